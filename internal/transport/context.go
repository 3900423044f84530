package transport

import "context"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID assigned by the server, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
