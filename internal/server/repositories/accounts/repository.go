// Package accounts declares the account persistence contract and its
// PostgreSQL implementation.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

// Repository stores Account records.
type Repository interface {
	// Create inserts account. Each user owns at most one account.
	Create(ctx context.Context, account *models.Account) error

	// GetByUserID returns common.ErrorNotFound when the user has no account.
	GetByUserID(ctx context.Context, userID string) (*models.Account, error)
}
