package routing

import "context"

type decisionContextKey struct{}

// WithDecision stores d in ctx.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionContextKey{}, d)
}

// FromContext returns the decision stored by Middleware.
func FromContext(ctx context.Context) (Decision, bool) {
	if ctx == nil {
		return Decision{}, false
	}
	d, ok := ctx.Value(decisionContextKey{}).(Decision)
	return d, ok
}
