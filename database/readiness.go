package database

import (
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/event"
)

// Readiness records whether the document store has been reached.
// The zero value is "not ready".
type Readiness struct {
	ready atomic.Bool
}

func (r *Readiness) MarkReady() { r.ready.Store(true) }

func (r *Readiness) MarkNotReady() { r.ready.Store(false) }

func (r *Readiness) Ready() bool { return r.ready.Load() }

// Status renders the state for the health endpoint.
func (r *Readiness) Status() string {
	if r.Ready() {
		return "connected"
	}
	return "not_connected"
}

// ServerMonitor keeps r in step with the driver's view of the deployment.
// The store counts as ready while at least one server can take writes.
func (r *Readiness) ServerMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		TopologyDescriptionChanged: func(e *event.TopologyDescriptionChangedEvent) {
			if writable(e.NewDescription) {
				r.MarkReady()
				return
			}
			r.MarkNotReady()
		},
	}
}

// Server kinds as reported in event.ServerDescription.Kind.
const (
	kindStandalone   = "Standalone"
	kindPrimary      = "RSPrimary"
	kindMongos       = "Mongos"
	kindLoadBalancer = "LoadBalancer"
)

func writable(topo event.TopologyDescription) bool {
	for _, s := range topo.Servers {
		switch s.Kind {
		case kindStandalone, kindPrimary, kindMongos, kindLoadBalancer:
			return true
		}
	}
	return false
}
