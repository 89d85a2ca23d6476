// Package stats derives completion figures from the account table, the
// ledgers and the catalog size.
package stats

import (
	"context"

	"github.com/dmitrijs2005/prefkeeper/internal/logging"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

type LedgerLoader interface {
	Load(ctx context.Context, identity string) ([]models.AnswerRecord, error)
}

type Progress struct {
	Identity        string
	Responses       int
	ProgressPercent float64
	Completed       bool
	CreatedAt       string
}

type Stats struct {
	TotalAccounts         int
	TotalResponses        int
	CatalogSize           int
	CompletedAccounts     int
	CompletionRatePercent float64
	// PerIdentity follows the order of the accounts passed to Compute.
	PerIdentity []Progress
}

// Percent returns 100*part/whole, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

// Compute builds the figures for accounts. An identity whose ledger cannot be
// loaded counts as having no responses.
func Compute(ctx context.Context, accounts []models.Account, catalogSize int, ledgers LedgerLoader, logger logging.Logger) *Stats {
	s := &Stats{
		TotalAccounts: len(accounts),
		CatalogSize:   catalogSize,
		PerIdentity:   make([]Progress, 0, len(accounts)),
	}

	for _, a := range accounts {
		n := 0
		records, err := ledgers.Load(ctx, a.Identity)
		if err != nil {
			logger.Warn(ctx, "ledger unreadable, counted as empty", "identity", a.Identity, "error", err)
		} else {
			n = len(records)
		}

		completed := catalogSize > 0 && n >= catalogSize
		if completed {
			s.CompletedAccounts++
		}
		s.TotalResponses += n
		s.PerIdentity = append(s.PerIdentity, Progress{
			Identity:        a.Identity,
			Responses:       n,
			ProgressPercent: Percent(n, catalogSize),
			Completed:       completed,
			CreatedAt:       a.CreatedAt,
		})
	}

	if catalogSize > 0 {
		s.CompletionRatePercent = Percent(s.CompletedAccounts, s.TotalAccounts)
	}
	return s
}

func (s *Stats) Lookup(identity string) (Progress, bool) {
	for _, p := range s.PerIdentity {
		if p.Identity == identity {
			return p, true
		}
	}
	return Progress{}, false
}
