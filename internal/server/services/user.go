// Package services contains server-side business logic: UserService runs
// signup, signin and profile operations; AccountProvisioner opens the
// account each new user receives.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/cryptox"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/events"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophwallet/internal/server/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TokenIssuer mints session tokens; *auth.Issuer implements it.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type SignupInput struct {
	UserName  string
	Password  string
	FirstName string
	LastName  string
}

type SignupResult struct {
	UserID string
	Token  string
}

type SigninInput struct {
	UserName string
	Password string
}

// ProfileUpdate lists the only fields a user may change about themselves.
// A nil field is left untouched.
type ProfileUpdate struct {
	Password  *string
	FirstName *string
	LastName  *string
}

// UserService implements the account flows:
// - Signup: validate, create user and account atomically, issue a token
// - Signin: verify credentials, issue a token
// - UpdateProfile, GetUser, ListUsers
type UserService struct {
	db          dbx.DBTX
	withTx      dbx.TxRunner
	repomanager repomanager.RepositoryManager
	issuer      TokenIssuer
	provisioner *AccountProvisioner
	publisher   events.Publisher
	log         logging.Logger
	tracer      trace.Tracer
	newID       func() string
	now         func() time.Time
}

// NewUserService constructs a UserService over db.
func NewUserService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	issuer TokenIssuer,
	provisioner *AccountProvisioner,
	publisher events.Publisher,
	log logging.Logger,
) *UserService {
	return &UserService{
		db:          db,
		withTx:      dbx.Runner(db, nil),
		repomanager: m,
		issuer:      issuer,
		provisioner: provisioner,
		publisher:   publisher,
		log:         log.With("module", "services.user"),
		tracer:      telemetry.Tracer(),
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Signup registers a user, opens their account and returns a session token.
// The user row and the account row are committed together or not at all; a
// concurrent signup for the same username loses with ErrDuplicateUser.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (res *SignupResult, err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Signup")
	defer endSpan(span, &err)

	userName, err := normalizeUserName(in.UserName)
	if err != nil {
		return nil, err
	}
	if err := requireNonEmpty("password", in.Password); err != nil {
		return nil, err
	}
	if err := requireNonBlank("firstName", in.FirstName); err != nil {
		return nil, err
	}
	if err := requireNonBlank("lastName", in.LastName); err != nil {
		return nil, err
	}

	_, err = s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateUser
	case !errors.Is(err, common.ErrorNotFound):
		return nil, storageError(err)
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := cryptox.HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           s.newID(),
		UserName:     userName,
		PasswordHash: hash,
		Salt:         salt,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}

	var account *models.Account
	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		var provErr error
		account, provErr = s.provisioner.Provision(ctx, tx, user.ID)
		return provErr
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			return nil, common.ErrDuplicateUser
		}
		return nil, storageError(err)
	}

	span.SetAttributes(attribute.String("user.id", user.ID))

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}

	s.publishSignedUp(ctx, user, account)

	s.log.Info(ctx, "user signed up", "user_id", user.ID)

	return &SignupResult{UserID: user.ID, Token: token}, nil
}

// Signin checks the password of an existing user and returns a fresh token.
func (s *UserService) Signin(ctx context.Context, in SigninInput) (token string, err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Signin")
	defer endSpan(span, &err)

	userName, err := normalizeUserName(in.UserName)
	if err != nil {
		return "", err
	}
	if err := requireNonEmpty("password", in.Password); err != nil {
		return "", err
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", storageError(err)
	}

	ok, err := cryptox.VerifyPassword(in.Password, user.Salt, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err = s.issuer.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}
	return token, nil
}

// UpdateProfile applies the fields present in upd to userID. A new password
// is stored under a fresh salt.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateProfile", trace.WithAttributes(attribute.String("user.id", userID)))
	defer endSpan(span, &err)

	var changes models.ProfileChanges

	if upd.FirstName != nil {
		if err := requireNonBlank("firstName", *upd.FirstName); err != nil {
			return err
		}
		v := strings.TrimSpace(*upd.FirstName)
		changes.FirstName = &v
	}
	if upd.LastName != nil {
		if err := requireNonBlank("lastName", *upd.LastName); err != nil {
			return err
		}
		v := strings.TrimSpace(*upd.LastName)
		changes.LastName = &v
	}
	if upd.Password != nil {
		if err := requireNonEmpty("password", *upd.Password); err != nil {
			return err
		}
		salt, err := cryptox.NewSalt()
		if err != nil {
			return err
		}
		hash, err := cryptox.HashPassword(*upd.Password, salt)
		if err != nil {
			return err
		}
		changes.Salt, changes.PasswordHash = salt, hash
	}

	if err := s.repomanager.Users(s.db).UpdateProfile(ctx, userID, changes); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrNotFound
		}
		return storageError(err)
	}
	return nil
}

// GetUser returns the user behind userID.
func (s *UserService) GetUser(ctx context.Context, userID string) (user *models.User, err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetUser")
	defer endSpan(span, &err)

	user, err = s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, storageError(err)
	}
	return user, nil
}

// ListUsers returns users whose first or last name contains filter. The
// match is case-sensitive and an empty filter lists everyone.
func (s *UserService) ListUsers(ctx context.Context, filter string) (list []models.UserSummary, err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListUsers")
	defer endSpan(span, &err)

	list, err = s.repomanager.Users(s.db).List(ctx, filter)
	if err != nil {
		return nil, storageError(err)
	}
	if list == nil {
		list = []models.UserSummary{}
	}
	return list, nil
}

func (s *UserService) publishSignedUp(ctx context.Context, user *models.User, account *models.Account) {
	ev := events.UserSignedUp{
		UserID:     user.ID,
		UserName:   user.UserName,
		AccountID:  account.ID,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.RoutingKeyUserSignedUp, ev); err != nil {
		s.log.Warn(ctx, "publish signup event failed", "user_id", user.ID, "error", err)
	}
}

// normalizeUserName trims surrounding space and checks the rest is a bare
// email address with a dotted domain. Case is kept; usernames compare
// exactly.
func normalizeUserName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", common.Validationf("username is required")
	}
	addr, err := mail.ParseAddress(name)
	if err != nil || addr.Address != name || !hasDottedDomain(name) {
		return "", common.Validationf("username must be an email address")
	}
	return name, nil
}

func hasDottedDomain(addr string) bool {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return false
	}
	domain := addr[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

// requireNonBlank rejects empty and whitespace-only names.
func requireNonBlank(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return common.Validationf("%s is required", field)
	}
	return nil
}

// requireNonEmpty rejects only the empty string. Passwords are hashed
// verbatim, so whitespace is significant.
func requireNonEmpty(field, v string) error {
	if v == "" {
		return common.Validationf("%s is required", field)
	}
	return nil
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}

func endSpan(span trace.Span, err *error) {
	if *err != nil {
		telemetry.Fail(span, *err)
	}
	span.End()
}
