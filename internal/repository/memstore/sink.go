package memstore

import (
	"context"
	"errors"
	"strings"
	"sync"
)

const sinkBase = "https://media.test/"

// Sink is an in-memory media sink. FailPut and FailDelete make the next
// calls fail.
type Sink struct {
	mu         sync.Mutex
	blobs      map[string][]byte
	Deleted    []string
	FailPut    bool
	FailDelete bool
}

func NewSink() *Sink {
	return &Sink{blobs: map[string][]byte{}}
}

func (s *Sink) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut {
		return "", errors.New("sink unavailable")
	}
	s.blobs[key] = data
	return sinkBase + key, nil
}

func (s *Sink) DeleteIfExists(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete {
		return errors.New("sink unavailable")
	}
	s.Deleted = append(s.Deleted, url)
	delete(s.blobs, strings.TrimPrefix(url, sinkBase))
	return nil
}

func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

func (s *Sink) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[strings.TrimPrefix(url, sinkBase)]
	return ok
}
