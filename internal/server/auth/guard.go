package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophwallet/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// TokenVerifier resolves a token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Guard gates protected operations. It keeps no state between requests.
type Guard struct {
	verifier TokenVerifier
}

func NewGuard(v TokenVerifier) *Guard {
	return &Guard{verifier: v}
}

// Authenticate verifies rawToken and returns ctx extended with the user id.
// An empty token is rejected with common.ErrAuthentication.
func (g *Guard) Authenticate(ctx context.Context, rawToken string) (context.Context, error) {
	if rawToken == "" {
		return ctx, common.ErrAuthentication
	}

	userID, err := g.verifier.Verify(rawToken)
	if err != nil {
		return ctx, err
	}

	return WithUserID(ctx, userID), nil
}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the user id stored by the guard.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
