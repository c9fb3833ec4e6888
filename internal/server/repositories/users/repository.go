// Package users declares the user persistence contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

// Repository stores User records.
type Repository interface {
	// Create inserts user. A username collision yields common.ErrDuplicateUser.
	Create(ctx context.Context, user *models.User) error

	// GetUserByLogin returns common.ErrorNotFound when no user has userName.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when id is unknown.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdateProfile applies the non-nil fields of changes. It returns
	// common.ErrorNotFound when id is unknown.
	UpdateProfile(ctx context.Context, id string, changes models.ProfileChanges) error

	// List returns users whose first or last name contains filter.
	List(ctx context.Context, filter string) ([]models.UserSummary, error)
}
