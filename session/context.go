package session

import (
	"context"

	"github.com/octabyte/becas-client/models"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying sess.
func NewContext(ctx context.Context, sess models.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session stored by NewContext. The second result
// is false when ctx carries none.
func FromContext(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(models.Session)
	return sess, ok
}

// TokenFromContext returns the access token of the carried session, or "".
func TokenFromContext(ctx context.Context) string {
	sess, _ := FromContext(ctx)
	return sess.AccessToken()
}
