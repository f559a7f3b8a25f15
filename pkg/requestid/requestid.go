package requestid

import "context"

// Header is the HTTP header carrying the request id. Its lower-cased form is
// used as the gRPC metadata key.
const Header = "X-Request-ID"

type ctxKey struct{}

// NewContext returns a context that carries the given request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
