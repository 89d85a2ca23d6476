// Package ledger manages each identity's response ledger: the ordered list
// of answer records persisted as one file per identity.
package ledger

import (
	"context"

	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

// Repository persists whole ledgers. Save replaces the stored ledger in one
// step; Load of an unknown identity returns an empty ledger.
type Repository interface {
	Load(ctx context.Context, identity string) ([]models.AnswerRecord, error)
	Save(ctx context.Context, identity string, records []models.AnswerRecord) error
	Delete(ctx context.Context, identity string) (bool, error)
}
