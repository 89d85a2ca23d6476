// Package accounts is the shared account table: identity → password hash
// and creation time, with registration, authentication and deletion.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

// Repository stores accounts. Get and Delete return common.ErrorNotFound for
// an unknown identity; Create returns common.ErrorAlreadyExists for a taken
// one and leaves the stored account untouched.
type Repository interface {
	Get(ctx context.Context, identity string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, identity string) error
	List(ctx context.Context) ([]models.Account, error)
}
