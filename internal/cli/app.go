package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/prefkeeper/internal/accounts"
	"github.com/dmitrijs2005/prefkeeper/internal/catalog"
	"github.com/dmitrijs2005/prefkeeper/internal/config"
	"github.com/dmitrijs2005/prefkeeper/internal/cryptox"
	"github.com/dmitrijs2005/prefkeeper/internal/export"
	"github.com/dmitrijs2005/prefkeeper/internal/ledger"
	"github.com/dmitrijs2005/prefkeeper/internal/logging"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
	"github.com/dmitrijs2005/prefkeeper/internal/survey"
)

type AccountService interface {
	Register(ctx context.Context, identity string, password []byte) error
	Authenticate(ctx context.Context, identity string, password []byte) error
	Delete(ctx context.Context, identity string) error
	List(ctx context.Context) ([]models.Account, error)
}

type LedgerService interface {
	Load(ctx context.Context, identity string) ([]models.AnswerRecord, error)
	Upsert(ctx context.Context, identity string, record models.AnswerRecord) ([]models.AnswerRecord, error)
}

type CatalogLoader interface {
	Load(ctx context.Context) []models.Question
}

type Exporter interface {
	ExportOne(ctx context.Context, identity string, catalog []models.Question, records []models.AnswerRecord) (*export.Result, error)
	ExportAll(ctx context.Context, catalog []models.Question) (*export.Result, error)
}

type App struct {
	accounts AccountService
	ledger   LedgerService
	catalog  CatalogLoader
	exporter Exporter
	logger   logging.Logger

	scanner *bufio.Scanner
	out     io.Writer
	now     func() time.Time

	session   *survey.Session
	questions []models.Question

	closers []io.Closer
}

// NewApp wires the stores and services described by c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{
		logger:  logger,
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		now:     time.Now,
	}

	var accountRepo accounts.Repository
	switch c.AccountsBackend {
	case config.BackendSQLite:
		db, err := accounts.OpenSQLite(ctx, c.AccountsDSN)
		if err != nil {
			logger.Error(ctx, "error initializing database", "dsn", c.AccountsDSN, "error", err)
			return nil, err
		}
		app.closers = append(app.closers, db)
		accountRepo = accounts.NewSQLiteRepository(db)
	default:
		accountRepo = accounts.NewJSONRepository(c.UsersFile)
	}

	ledgerRepo := ledger.NewJSONRepository(c.DataDir)
	app.ledger = ledger.NewService(ledgerRepo, logger)
	app.accounts = accounts.NewService(accountRepo, ledgerRepo, cryptox.NewHasher(cryptox.DefaultParams), logger)
	app.catalog = catalog.NewLoader(c.QuestionsFile, logger)

	writer, err := export.NewWriter(c.ExportFormat)
	if err != nil {
		app.Close()
		return nil, err
	}

	var opts []export.Option
	if c.S3Enabled() {
		client, err := export.NewS3Client(ctx, export.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		opts = append(opts, export.WithPublisher(export.NewS3Publisher(client, c.S3Bucket)))
	}
	app.exporter = export.NewService(c.ExportDirOrDefault(), c.AggregateExportName, writer, accountRepo, app.ledger, logger, opts...)

	return app, nil
}

// Close releases the account database, if one was opened.
func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to PrefKeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) isAdmin() bool {
	return a.session != nil && accounts.IsAdmin(a.session.Identity)
}

func (a *App) getStatus() string {
	if a.session == nil {
		return "guest"
	}
	if n := len(a.questions); n > 0 && !a.session.ShowSummary {
		return fmt.Sprintf("%s q%d/%d", a.session.Identity, a.session.Index+1, n)
	}
	return a.session.Identity
}
