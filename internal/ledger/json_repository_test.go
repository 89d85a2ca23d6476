package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRepository_LoadMissingReturnsEmpty(t *testing.T) {
	r := NewJSONRepository(t.TempDir())

	got, err := r.Load(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONRepository_SaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	r := NewJSONRepository(dir)
	ctx := context.Background()

	in := []models.AnswerRecord{
		{QuestionID: 0, User: "u1", Choice: models.ChoiceA, SelectedText: "a", Confidence: 3, Timestamp: "2025-01-01 00:00:00"},
		{QuestionID: 2, User: "u1", Choice: models.ChoiceB, SelectedText: "b", Confidence: 5, Timestamp: "2025-01-01 00:01:00"},
	}
	require.NoError(t, r.Save(ctx, "u1", in))

	_, err := os.Stat(filepath.Join(dir, "u1_data.json"))
	require.NoError(t, err)

	got, err := r.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestJSONRepository_MalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u1_data.json"), []byte(`[{"question_id": 1,`), 0o600))

	_, err := NewJSONRepository(dir).Load(context.Background(), "u1")
	require.ErrorIs(t, err, common.ErrorMalformedLedger)
}

func TestJSONRepository_Delete(t *testing.T) {
	r := NewJSONRepository(t.TempDir())
	ctx := context.Background()
	require.NoError(t, r.Save(ctx, "u1", nil))

	removed, err := r.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestJSONRepository_RejectsUnsafeIdentity(t *testing.T) {
	r := NewJSONRepository(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", ".", "..", "../etc", `a\b`, "a/b"} {
		_, err := r.Load(ctx, id)
		require.ErrorIs(t, err, common.ErrorInvalidIdentity, id)

		err = r.Save(ctx, id, nil)
		require.ErrorIs(t, err, common.ErrorInvalidIdentity, id)
	}
}
