package services

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Initial balance range, [minBalance, maxBalance).
const (
	minBalance = 1
	maxBalance = 10001
)

// AccountProvisioner creates the account every new user starts with.
type AccountProvisioner struct {
	repomanager repomanager.RepositoryManager
	rand        func() float64
	newID       func() string
}

// NewAccountProvisioner returns a provisioner drawing balances from
// math/rand/v2.
func NewAccountProvisioner(m repomanager.RepositoryManager) *AccountProvisioner {
	return &AccountProvisioner{repomanager: m, rand: rand.Float64, newID: uuid.NewString}
}

// Provision inserts one account for userID on tx. It must run in the same
// transaction that created the user.
func (p *AccountProvisioner) Provision(ctx context.Context, tx dbx.DBTX, userID string) (*models.Account, error) {
	account := &models.Account{
		ID:      p.newID(),
		UserID:  userID,
		Balance: initialBalance(p.rand()),
	}

	if err := p.repomanager.Accounts(tx).Create(ctx, account); err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

// initialBalance maps r in [0, 1) to a cent-rounded amount in
// [minBalance, maxBalance).
func initialBalance(r float64) float64 {
	b := math.Round((minBalance+r*(maxBalance-minBalance))*100) / 100
	if b >= maxBalance {
		b = maxBalance - 0.01
	}
	if b < minBalance {
		b = minBalance
	}
	return b
}
