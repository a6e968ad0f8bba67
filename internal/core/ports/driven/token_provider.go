package driven

import "context"

// TokenProvider supplies the session token for backend requests.
// Session storage and login flow live outside this core; callers pass
// an explicit provider rather than reading ambient state.
type TokenProvider interface {
	// Token returns the current session token, or empty when the
	// backend is unauthenticated.
	Token(ctx context.Context) (string, error)
}
