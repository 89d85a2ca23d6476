package accounts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/cryptox"
	"github.com/dmitrijs2005/prefkeeper/internal/ledger"
	"github.com/dmitrijs2005/prefkeeper/internal/logging"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = cryptox.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

type fixture struct {
	svc     *Service
	repo    *JSONRepository
	ledgers *ledger.JSONRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	repo := NewJSONRepository(filepath.Join(dir, "users.json"))
	ledgers := ledger.NewJSONRepository(filepath.Join(dir, "user_data"))
	svc := NewService(repo, ledgers, cryptox.NewHasher(testParams), logging.NewDiscard())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC) }
	return fixture{svc: svc, repo: repo, ledgers: ledgers}
}

func TestService_RegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "u1", []byte("p1")))

	a, err := f.repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01 10:20:30", a.CreatedAt)
	assert.NotContains(t, a.PasswordHash, "p1")

	require.NoError(t, f.svc.Authenticate(ctx, "u1", []byte("p1")))
	require.ErrorIs(t, f.svc.Authenticate(ctx, "u1", []byte("wrong")), common.ErrorWrongPassword)
	require.ErrorIs(t, f.svc.Authenticate(ctx, "nobody", []byte("p1")), common.ErrorNotFound)
}

func TestService_RegisterDuplicateKeepsPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "u1", []byte("p1")))
	require.ErrorIs(t, f.svc.Register(ctx, "u1", []byte("p2")), common.ErrorAlreadyExists)

	require.NoError(t, f.svc.Authenticate(ctx, "u1", []byte("p1")))
	require.ErrorIs(t, f.svc.Authenticate(ctx, "u1", []byte("p2")), common.ErrorWrongPassword)
}

func TestService_RegisterRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.svc.Register(ctx, "", []byte("p")), common.ErrorInvalidIdentity)
	require.ErrorIs(t, f.svc.Register(ctx, "../x", []byte("p")), common.ErrorInvalidIdentity)
	require.ErrorIs(t, f.svc.Register(ctx, "u1", nil), common.ErrorEmptyPassword)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_DeleteRemovesLedgerAndAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "u1", []byte("p1")))
	require.NoError(t, f.ledgers.Save(ctx, "u1", []models.AnswerRecord{{QuestionID: 1, Choice: models.ChoiceA, Confidence: 3}}))

	require.NoError(t, f.svc.Delete(ctx, "u1"))

	_, err := f.repo.Get(ctx, "u1")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, f.svc.Authenticate(ctx, "u1", []byte("p1")), common.ErrorNotFound)
	records, err := f.ledgers.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestService_DeleteUnknownSucceeds(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Delete(context.Background(), "ghost"))
}

type failingRepo struct {
	Repository
}

func (failingRepo) Delete(context.Context, string) error {
	return errors.New("disk full")
}

func TestService_DeleteReportsPartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Register(ctx, "u1", []byte("p1")))
	require.NoError(t, f.ledgers.Save(ctx, "u1", []models.AnswerRecord{{QuestionID: 1, Choice: models.ChoiceA, Confidence: 3}}))

	f.svc.repo = failingRepo{Repository: f.repo}
	err := f.svc.Delete(ctx, "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger of \"u1\" removed but account entry kept")
}

func TestService_AuthenticateCorruptHashReturnsError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hashes := map[string]string{
		"zero-time":    "$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5",
		"zero-threads": "$argon2id$v=19$m=1024,t=1,p=0$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5",
		"huge-memory":  "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5",
	}

	for identity, hash := range hashes {
		t.Run(identity, func(t *testing.T) {
			require.NoError(t, f.repo.Create(ctx, &models.Account{Identity: identity, PasswordHash: hash}))

			var err error
			require.NotPanics(t, func() { err = f.svc.Authenticate(ctx, identity, []byte("pw")) })
			require.ErrorIs(t, err, cryptox.ErrInvalidHash)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin("admin"))
	assert.False(t, IsAdmin("Admin"))
	assert.False(t, IsAdmin("u1"))
}
