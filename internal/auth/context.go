package auth

import "context"

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns ctx carrying the verified session claims.
func WithSession(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, sessionKey, c)
}

// SessionFromContext returns the session claims stored by WithSession.
func SessionFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(sessionKey).(*Claims)
	return c, ok
}
