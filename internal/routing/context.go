package routing

import "context"

type ctxKey struct{}

// WithResolved stores the routing result on ctx.
func WithResolved(ctx context.Context, req ResolvedRequest) context.Context {
	return context.WithValue(ctx, ctxKey{}, req)
}

// FromContext returns the routing result stored by the dispatcher.
func FromContext(ctx context.Context) (ResolvedRequest, bool) {
	if ctx == nil {
		return ResolvedRequest{}, false
	}
	req, ok := ctx.Value(ctxKey{}).(ResolvedRequest)
	return req, ok
}
