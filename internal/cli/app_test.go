package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app     *App
	out     *bytes.Buffer
	dir     string
	ledgers *ledger.JSONRepository
}

// stubPasswords makes getPassword return the given passwords in order.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		require.NotEmpty(t, passwords, "unexpected password prompt")
		pw := []byte(passwords[0])
		passwords = passwords[1:]
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func newTestEnv(t *testing.T, input ...string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	logger := logging.NewDiscard()

	accountRepo := accounts.NewJSONRepository(filepath.Join(dir, "users.json"))
	ledgerRepo := ledger.NewJSONRepository(filepath.Join(dir, "user_data"))
	ledgerSvc := ledger.NewService(ledgerRepo, logger)
	hasher := cryptox.NewHasher(cryptox.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})

	writer, err := export.NewWriter("csv")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app := &App{
		accounts: accounts.NewService(accountRepo, ledgerRepo, hasher, logger),
		ledger:   ledgerSvc,
		catalog:  catalog.NewLoader(filepath.Join(dir, "questions.csv"), logger),
		exporter: export.NewService(filepath.Join(dir, "user_data"), "all_preference_data", writer, accountRepo, ledgerSvc, logger),
		logger:   logger,
		scanner:  bufio.NewScanner(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:      out,
		now:      func() time.Time { return time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC) },
	}
	return &testEnv{app: app, out: out, dir: dir, ledgers: ledgerRepo}
}

func (e *testEnv) login(t *testing.T, identity string) {
	t.Helper()
	require.NoError(t, e.app.accounts.Register(context.Background(), identity, []byte("pw")))
	e.app.questions = e.app.catalog.Load(context.Background())
	e.app.session = survey.NewSession(identity, len(e.app.questions), 0)
}

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t, "u1", "u1", "u1")
	stubPasswords(t, "p1", "p1", "wrong", "p1")
	ctx := context.Background()

	require.NoError(t, env.app.Register(ctx))
	assert.Contains(t, env.out.String(), "Registration successful!")

	require.Error(t, env.app.Login(ctx))
	assert.False(t, env.app.isLoggedIn())

	require.NoError(t, env.app.Login(ctx))
	assert.True(t, env.app.isLoggedIn())
	assert.False(t, env.app.isAdmin())
	assert.Equal(t, "u1", env.app.session.Identity)
	assert.Len(t, env.app.questions, 3)
	assert.Equal(t, "u1 q1/3", env.app.getStatus())

	require.NoError(t, env.app.Logout(ctx))
	assert.Equal(t, "guest", env.app.getStatus())
}

func TestRegister_PasswordMismatch(t *testing.T) {
	env := newTestEnv(t, "u1")
	stubPasswords(t, "p1", "p2")

	require.ErrorIs(t, env.app.Register(context.Background()), errPasswordMismatch)

	_, err := env.app.accounts.List(context.Background())
	require.NoError(t, err)
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t, "u1", "u1")
	stubPasswords(t, "p1", "p1", "p2", "p2")
	ctx := context.Background()

	require.NoError(t, env.app.Register(ctx))
	err := env.app.Register(ctx)
	require.ErrorContains(t, err, "already exists")
}

func TestLogin_ResumesAfterLastAnswer(t *testing.T) {
	env := newTestEnv(t, "u1")
	stubPasswords(t, "pw")
	ctx := context.Background()

	require.NoError(t, env.app.accounts.Register(ctx, "u1", []byte("pw")))
	require.NoError(t, env.ledgers.Save(ctx, "u1", []models.AnswerRecord{{QuestionID: 0, Choice: models.ChoiceA, Confidence: 3}}))

	require.NoError(t, env.app.Login(ctx))
	assert.Equal(t, 1, env.app.session.Index)
}

func TestAnswer_SavesAndAdvances(t *testing.T) {
	env := newTestEnv(t, "A", "4", "b", "")
	env.login(t, "u1")
	ctx := context.Background()

	require.NoError(t, env.app.Answer(ctx))
	assert.Equal(t, 1, env.app.session.Index)

	require.NoError(t, env.app.Answer(ctx))
	assert.Equal(t, 2, env.app.session.Index)

	records, err := env.ledgers.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.ChoiceA, records[0].Choice)
	assert.Equal(t, 4, records[0].Confidence)
	assert.Equal(t, models.ChoiceB, records[1].Choice)
	assert.Equal(t, 3, records[1].Confidence)
	assert.Equal(t, "2025-03-01 10:20:30", records[1].Timestamp)
	assert.Equal(t, "u1", records[1].User)
}

func TestAnswer_ResubmitKeepsOneRecord(t *testing.T) {
	env := newTestEnv(t, "A", "4", "B", "2")
	env.login(t, "u1")
	ctx := context.Background()

	require.NoError(t, env.app.Navigate(ctx, "goto", []string{"2"}))
	require.NoError(t, env.app.Answer(ctx))
	require.NoError(t, env.app.Navigate(ctx, "prev", nil))
	require.NoError(t, env.app.Answer(ctx))

	records, err := env.ledgers.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].QuestionID)
	assert.Equal(t, models.ChoiceB, records[0].Choice)
	assert.Equal(t, 2, records[0].Confidence)
}

func TestAnswer_LastQuestion(t *testing.T) {
	env := newTestEnv(t, "A", "5")
	env.login(t, "u1")
	ctx := context.Background()

	require.NoError(t, env.app.Navigate(ctx, "last", nil))
	require.NoError(t, env.app.Answer(ctx))
	assert.Equal(t, 2, env.app.session.Index)
	assert.Contains(t, env.out.String(), "You've reached the last question!")
}

func TestAnswer_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t, "", "C", "A", "9")
	env.login(t, "u1")
	ctx := context.Background()

	require.Error(t, env.app.Answer(ctx))
	require.Error(t, env.app.Answer(ctx))
	require.Error(t, env.app.Answer(ctx))

	records, err := env.ledgers.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, env.app.session.Index)
}

func TestNavigate_GotoOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "u1")

	require.Error(t, env.app.Navigate(context.Background(), "goto", []string{"9"}))
	require.Error(t, env.app.Navigate(context.Background(), "goto", []string{"x"}))
	assert.Equal(t, 0, env.app.session.Index)
}

func TestNavigate_GotoUsageGoesToCommandOutput(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.login(t, "u1")

	require.NoError(t, env.app.Navigate(context.Background(), "goto", nil))
	assert.Contains(t, env.out.String(), "Usage: goto <n>")
	assert.Empty(t, *out)
	assert.Equal(t, 0, env.app.session.Index)
}

func TestSummaryAndExport(t *testing.T) {
	env := newTestEnv(t, "B", "2")
	env.login(t, "u1")
	ctx := context.Background()

	require.NoError(t, env.app.Answer(ctx))
	require.NoError(t, env.app.Summary(ctx))
	assert.True(t, env.app.session.ShowSummary)
	assert.Contains(t, env.out.String(), "Completion: 33.3%")

	require.NoError(t, env.app.Export(ctx))
	data, err := os.ReadFile(filepath.Join(env.dir, "user_data", "u1_results.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "0,u1,"))
	assert.Contains(t, lines[1], ",B,")
}

func TestAdmin_DeleteAndStats(t *testing.T) {
	env := newTestEnv(t, "y", "y")
	env.login(t, "admin")
	ctx := context.Background()

	require.NoError(t, env.app.accounts.Register(ctx, "u1", []byte("pw")))
	require.NoError(t, env.ledgers.Save(ctx, "u1", []models.AnswerRecord{{QuestionID: 0, Choice: models.ChoiceA, Confidence: 3}}))

	require.NoError(t, env.app.Stats(ctx))
	assert.Contains(t, env.out.String(), "Total users:      2")
	assert.Contains(t, env.out.String(), "Total responses:  1")

	require.NoError(t, env.app.Users(ctx))
	assert.Contains(t, env.out.String(), "33.3%")

	require.ErrorContains(t, env.app.Delete(ctx, "admin"), "cannot be deleted")

	require.NoError(t, env.app.Delete(ctx, "u1"))
	require.NoError(t, env.app.Delete(ctx, "ghost"))

	records, err := env.ledgers.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
	_, err = os.Stat(filepath.Join(env.dir, "user_data", "u1_data.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestAdmin_ExportAllPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "admin")

	require.NoError(t, env.app.ExportAll(context.Background()))
	data, err := os.ReadFile(filepath.Join(env.dir, "user_data", "all_preference_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "No data available\n", string(data))
}

func TestNewApp_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = filepath.Join(dir, "user_data")
	cfg.QuestionsFile = filepath.Join(dir, "questions.csv")
	cfg.AccountsBackend = config.BackendSQLite
	cfg.AccountsDSN = filepath.Join(dir, "accounts.db")

	app, err := NewApp(context.Background(), cfg, logging.NewDiscard())
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.accounts.Register(context.Background(), "u1", []byte("pw")))
	require.NoError(t, app.accounts.Authenticate(context.Background(), "u1", []byte("pw")))
}

func TestNewApp_UnknownExportFormat(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ExportFormat = "pdf"

	_, err := NewApp(context.Background(), cfg, logging.NewDiscard())
	require.Error(t, err)
}
