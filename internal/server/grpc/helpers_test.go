package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUsers struct {
	signupRes *services.SignupResult
	signupErr error

	signinToken string
	signinErr   error

	updateUserID string
	updateIn     services.ProfileUpdate
	updateErr    error

	user   *models.User
	getErr error

	filter  string
	list    []models.UserSummary
	listErr error
}

func (f *fakeUsers) Signup(context.Context, services.SignupInput) (*services.SignupResult, error) {
	return f.signupRes, f.signupErr
}

func (f *fakeUsers) Signin(context.Context, services.SigninInput) (string, error) {
	return f.signinToken, f.signinErr
}

func (f *fakeUsers) UpdateProfile(_ context.Context, userID string, upd services.ProfileUpdate) error {
	f.updateUserID, f.updateIn = userID, upd
	return f.updateErr
}

func (f *fakeUsers) GetUser(context.Context, string) (*models.User, error) {
	return f.user, f.getErr
}

func (f *fakeUsers) ListUsers(_ context.Context, filter string) ([]models.UserSummary, error) {
	f.filter = filter
	return f.list, f.listErr
}

func newIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	iss, err := auth.NewIssuer([]byte("secret"), time.Hour)
	require.NoError(t, err)
	return iss
}

func newTestServer(t *testing.T, users UserService) (*GRPCServer, *auth.Issuer) {
	t.Helper()
	iss := newIssuer(t)
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, users, auth.NewGuard(iss)), iss
}
