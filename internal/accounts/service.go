package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/cryptox"
	"github.com/dmitrijs2005/prefkeeper/internal/ledger"
	"github.com/dmitrijs2005/prefkeeper/internal/logging"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

// LedgerDeleter removes an identity's ledger; ledger.Repository satisfies it.
type LedgerDeleter interface {
	Delete(ctx context.Context, identity string) (bool, error)
}

type Service struct {
	repo    Repository
	ledgers LedgerDeleter
	hasher  *cryptox.Hasher
	logger  logging.Logger
	now     func() time.Time
}

func NewService(repo Repository, ledgers LedgerDeleter, hasher *cryptox.Hasher, logger logging.Logger) *Service {
	return &Service{
		repo:    repo,
		ledgers: ledgers,
		hasher:  hasher,
		logger:  logger.With("component", "accounts"),
		now:     time.Now,
	}
}

// IsAdmin reports whether identity carries the admin capabilities.
func IsAdmin(identity string) bool {
	return identity == common.AdminIdentity
}

// Register creates an account. Identities are case-sensitive; a taken one
// yields common.ErrorAlreadyExists and the existing account is kept.
func (s *Service) Register(ctx context.Context, identity string, password []byte) error {
	if err := ledger.ValidateIdentity(identity); err != nil {
		return err
	}
	if len(password) == 0 {
		return common.ErrorEmptyPassword
	}

	if _, err := s.repo.Get(ctx, identity); err == nil {
		return common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	account := &models.Account{
		Identity:     identity,
		PasswordHash: s.hasher.Hash(password),
		CreatedAt:    s.now().Format(common.TimestampLayout),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return err
	}

	s.logger.Info(ctx, "account registered", "identity", identity)
	return nil
}

// Authenticate returns nil on success, common.ErrorNotFound for an unknown
// identity and common.ErrorWrongPassword for a mismatch.
func (s *Service) Authenticate(ctx context.Context, identity string, password []byte) error {
	account, err := s.repo.Get(ctx, identity)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		return fmt.Errorf("account %q: %w", identity, err)
	}
	if !ok {
		return common.ErrorWrongPassword
	}
	return nil
}

// Delete removes the identity's ledger file and then its account entry.
// Deleting an identity that has neither is not an error. When the ledger is
// gone but the account entry could not be removed, the returned error says so.
func (s *Service) Delete(ctx context.Context, identity string) error {
	removed, err := s.ledgers.Delete(ctx, identity)
	if err != nil {
		return fmt.Errorf("failed to delete ledger of %q: %w", identity, err)
	}

	if err := s.repo.Delete(ctx, identity); err != nil && !errors.Is(err, common.ErrorNotFound) {
		if removed {
			return fmt.Errorf("ledger of %q removed but account entry kept: %w", identity, err)
		}
		return fmt.Errorf("failed to delete account %q: %w", identity, err)
	}

	s.logger.Info(ctx, "account deleted", "identity", identity, "ledger_removed", removed)
	return nil
}

// List returns all accounts ordered by creation time.
func (s *Service) List(ctx context.Context) ([]models.Account, error) {
	return s.repo.List(ctx)
}
