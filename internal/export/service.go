package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/filex"
	"github.com/dmitrijs2005/prefkeeper/internal/ledger"
	"github.com/dmitrijs2005/prefkeeper/internal/logging"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

type AccountLister interface {
	List(ctx context.Context) ([]models.Account, error)
}

type LedgerLoader interface {
	Load(ctx context.Context, identity string) ([]models.AnswerRecord, error)
}

type Service struct {
	dir           string
	aggregateName string
	writer        Writer
	accounts      AccountLister
	ledgers       LedgerLoader
	publisher     Publisher
	logger        logging.Logger
}

type Option func(*Service)

// WithPublisher uploads every written export through p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(dir, aggregateName string, writer Writer, accounts AccountLister, ledgers LedgerLoader, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		dir:           dir,
		aggregateName: aggregateName,
		writer:        writer,
		accounts:      accounts,
		ledgers:       ledgers,
		logger:        logger.With("component", "export"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Result describes a written export.
type Result struct {
	Path string
	Rows int
	// Key is the object key of the uploaded copy, empty without a publisher.
	Key string
}

// ExportOne writes identity's records to <dir>/<identity>_results.<ext>.
// A record whose ordinal is outside the catalog aborts the export with
// common.ErrorIntegrity and no file is written.
func (s *Service) ExportOne(ctx context.Context, identity string, catalog []models.Question, records []models.AnswerRecord) (*Result, error) {
	if err := ledger.ValidateIdentity(identity); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row, ok := Join(identity, catalog, rec)
		if !ok {
			return nil, fmt.Errorf("%w: question %d is outside the catalog of %d", common.ErrorIntegrity, rec.QuestionID, len(catalog))
		}
		rows = append(rows, row.Fields())
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_results.%s", identity, s.writer.Ext()))
	return s.write(ctx, path, Header, rows)
}

// ExportAll writes the records of every account to one shared file.
// Identities whose ledger cannot be loaded and records outside the catalog
// are skipped and logged.
func (s *Service) ExportAll(ctx context.Context, catalog []models.Question) (*Result, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	var rows [][]string
	for _, a := range accounts {
		records, err := s.ledgers.Load(ctx, a.Identity)
		if err != nil {
			s.logger.Warn(ctx, "skipping identity", "identity", a.Identity, "error", err)
			continue
		}
		for _, rec := range records {
			row, ok := Join(a.Identity, catalog, rec)
			if !ok {
				s.logger.Warn(ctx, "skipping record outside catalog",
					"identity", a.Identity, "question_id", rec.QuestionID, "catalog_size", len(catalog))
				continue
			}
			rows = append(rows, row.Fields())
		}
	}

	header := Header
	if len(rows) == 0 {
		header = []string{Placeholder}
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s.%s", s.aggregateName, s.writer.Ext()))
	return s.write(ctx, path, header, rows)
}

func (s *Service) write(ctx context.Context, path string, header []string, rows [][]string) (*Result, error) {
	if _, err := filex.EnsureDir(s.dir); err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}

	err := filex.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		return s.writer.Write(w, header, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("write export %s: %w", path, err)
	}

	res := &Result{Path: path, Rows: len(rows)}
	s.logger.Info(ctx, "export written", "path", path, "rows", res.Rows)

	if s.publisher != nil {
		key, err := s.publisher.Publish(ctx, path)
		if err != nil {
			return res, fmt.Errorf("export written to %s but upload failed: %w", path, err)
		}
		res.Key = key
		s.logger.Info(ctx, "export uploaded", "key", key)
	}
	return res, nil
}
