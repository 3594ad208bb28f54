package gateway

import "context"

type tokenKey struct{}

// WithToken stamps the session's bearer credential onto the context. Every
// gateway implementation reads it from there, so background work (the poll
// loop, fire-and-forget refreshes) can carry the credential of the session
// that started it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the credential stamped by WithToken, or "".
func TokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey{}).(string)
	return v
}
