package services

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/users"
	"go.opentelemetry.io/otel/trace/noop"
)

// memStore is an in-memory stand-in for the database. Transactions are
// serialised and restored from a snapshot when they fail.
type memStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	users    map[string]models.User
	accounts map[string]models.Account

	accountErr error
	listErr    error
}

func newMemStore() *memStore {
	return &memStore{users: map[string]models.User{}, accounts: map[string]models.Account{}}
}

func (m *memStore) runTx(ctx context.Context, fn dbx.TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	users, accs := cloneMap(m.users), cloneMap(m.accounts)
	m.mu.Unlock()

	err := fn(ctx, nil)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		m.mu.Lock()
		m.users, m.accounts = users, accs
		m.mu.Unlock()
	}
	return err
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository             { return memUsers{m} }
func (m *memStore) Accounts(dbx.DBTX) accounts.Repository       { return memAccounts{m} }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.UserName == u.UserName {
			return common.ErrDuplicateUser
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.m.users[u.ID] = *u
	return nil
}

func (r memUsers) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.UserName == userName {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r memUsers) UpdateProfile(_ context.Context, id string, c models.ProfileChanges) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	if c.FirstName != nil {
		u.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		u.LastName = *c.LastName
	}
	if c.PasswordHash != nil {
		u.PasswordHash, u.Salt = c.PasswordHash, c.Salt
	}
	r.m.users[id] = u
	return nil
}

func (r memUsers) List(_ context.Context, filter string) ([]models.UserSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.listErr != nil {
		return nil, r.m.listErr
	}
	var out []models.UserSummary
	for _, u := range r.m.users {
		if strings.Contains(u.FirstName, filter) || strings.Contains(u.LastName, filter) {
			out = append(out, models.UserSummary{ID: u.ID, UserName: u.UserName, FirstName: u.FirstName, LastName: u.LastName})
		}
	}
	slices.SortFunc(out, func(a, b models.UserSummary) int { return strings.Compare(a.UserName, b.UserName) })
	return out, nil
}

type memAccounts struct{ m *memStore }

func (r memAccounts) Create(_ context.Context, a *models.Account) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.accountErr != nil {
		return r.m.accountErr
	}
	if _, ok := r.m.accounts[a.UserID]; ok {
		return errors.New("db error: duplicate account")
	}
	r.m.accounts[a.UserID] = *a
	return nil
}

func (r memAccounts) GetByUserID(_ context.Context, userID string) (*models.Account, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.accounts[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	bodies []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.bodies = append(p.bodies, body)
	return p.err
}

func (p *recordingPublisher) Close() {}

func newTestService(store *memStore, issuer TokenIssuer, pub *recordingPublisher) *UserService {
	prov := NewAccountProvisioner(store)
	return &UserService{
		withTx:      store.runTx,
		repomanager: store,
		issuer:      issuer,
		provisioner: prov,
		publisher:   pub,
		log:         logging.NewNop(),
		tracer:      noop.NewTracerProvider().Tracer("test"),
		newID:       newSeqID(),
		now:         time.Now,
	}
}

func newSeqID() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "user-" + strconv.Itoa(n)
	}
}

// brokenUsersManager fails every user lookup with a driver error.
type brokenUsersManager struct{ *memStore }

func (b brokenUsersManager) Users(dbx.DBTX) users.Repository { return brokenUsers{memUsers{b.memStore}} }

type brokenUsers struct{ memUsers }

func (brokenUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, errors.New("db error: connection refused")
}
