// Package logging is the structured logger shared by the services, the
// bootstrap and the HTTP error handler. Records carry the request id of
// the context they are written under.
package logging

import "context"

// Logger takes key/value pairs after the message:
//
//	log.Info(ctx, "post created", "post_id", id, "media", kind)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger
}

// KeyRequestID is the attribute name used for the request id.
const KeyRequestID = "request_id"

type requestIDKey struct{}

// WithRequestID returns ctx carrying id; records logged under it gain a
// request_id attribute.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
