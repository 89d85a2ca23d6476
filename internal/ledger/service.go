package ledger

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/prefkeeper/internal/logging"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

// Service applies upsert-by-ordinal on top of a Repository.
//
// Upserts for the same identity made through one Service are serialized.
// Nothing coordinates separate processes writing the same ledger: each
// Save rewrites the whole file and the last one wins.
type Service struct {
	repo   Repository
	logger logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "ledger"),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockFor(identity string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		s.locks[identity] = l
	}
	return l
}

// Load returns the identity's ledger, empty if nothing was saved yet.
func (s *Service) Load(ctx context.Context, identity string) ([]models.AnswerRecord, error) {
	return s.repo.Load(ctx, identity)
}

// Upsert stores record in identity's ledger and returns the updated ledger.
//
// A record for an ordinal already present replaces it in place; a new
// ordinal is appended and the ledger re-sorted by ordinal. The result is
// written back before it is returned. The record is always attributed to
// identity.
func (s *Service) Upsert(ctx context.Context, identity string, record models.AnswerRecord) ([]models.AnswerRecord, error) {
	l := s.lockFor(identity)
	l.Lock()
	defer l.Unlock()

	records, err := s.repo.Load(ctx, identity)
	if err != nil {
		return nil, err
	}

	record.User = identity
	records = Merge(records, record)

	if err := s.repo.Save(ctx, identity, records); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "answer saved", "identity", identity, "question", record.QuestionID, "records", len(records))
	return records, nil
}

// Merge is the pure part of Upsert. It returns a new slice and leaves
// records untouched.
func Merge(records []models.AnswerRecord, record models.AnswerRecord) []models.AnswerRecord {
	records = slices.Clone(records)
	if i := Index(records, record.QuestionID); i >= 0 {
		records[i] = record
		return records
	}

	records = append(records, record)
	slices.SortStableFunc(records, func(a, b models.AnswerRecord) int {
		return a.QuestionID - b.QuestionID
	})
	return records
}

// Index returns the position of the record for ordinal, or -1.
func Index(records []models.AnswerRecord, ordinal int) int {
	return slices.IndexFunc(records, func(r models.AnswerRecord) bool {
		return r.QuestionID == ordinal
	})
}

// Find returns the record for ordinal, if any.
func Find(records []models.AnswerRecord, ordinal int) (models.AnswerRecord, bool) {
	if i := Index(records, ordinal); i >= 0 {
		return records[i], true
	}
	return models.AnswerRecord{}, false
}

// AnsweredSet returns the ordinals that have a record.
func AnsweredSet(records []models.AnswerRecord) map[int]struct{} {
	set := make(map[int]struct{}, len(records))
	for _, r := range records {
		set[r.QuestionID] = struct{}{}
	}
	return set
}
