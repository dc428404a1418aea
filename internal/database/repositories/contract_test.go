package repositories

import (
	"context"
	"notesapi/internal/database/models"
	"notesapi/internal/errs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newNote(subject, content string) models.NewNote {
	return models.NewNote{Subject: subject, Content: content}
}

// testNoteRepository runs the behaviour every NoteRepository must share.
// newRepo must return a store that holds no notes.
func testNoteRepository(t *testing.T, newRepo func(t *testing.T) NoteRepository) {
	ctx := context.Background()

	t.Run("list empty", func(t *testing.T) {
		notes, err := newRepo(t).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("create then get", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, models.NewNote{Subject: "Math", Content: "Review limits"})
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "Math", created.Subject)
		assert.Equal(t, "Review limits", created.Content)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("create appends to list with unique ids", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Create(ctx, models.NewNote{Subject: "a", Content: "1"})
		require.NoError(t, err)
		b, err := repo.Create(ctx, models.NewNote{Subject: "b", Content: "2"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)

		notes, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Note{*a, *b}, notes)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := newRepo(t).GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNoteNotFound)
		assert.Equal(t, errs.NotFound, errs.CodeOf(err))
	})

	t.Run("partial update", func(t *testing.T) {
		repo := newRepo(t)
		note, err := repo.Create(ctx, models.NewNote{Subject: "s", Content: "c"})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, note.ID, models.NotePatch{Subject: strPtr("s2")})
		require.NoError(t, err)
		assert.Equal(t, models.Note{ID: note.ID, Subject: "s2", Content: "c"}, *updated)

		updated, err = repo.Update(ctx, note.ID, models.NotePatch{Content: strPtr("c2")})
		require.NoError(t, err)
		assert.Equal(t, models.Note{ID: note.ID, Subject: "s2", Content: "c2"}, *updated)

		updated, err = repo.Update(ctx, note.ID, models.NotePatch{Subject: strPtr(""), Content: strPtr("c3")})
		require.NoError(t, err)
		assert.Equal(t, models.Note{ID: note.ID, Subject: "", Content: "c3"}, *updated)

		got, err := repo.GetByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("empty patch returns note unchanged", func(t *testing.T) {
		repo := newRepo(t)
		note, err := repo.Create(ctx, models.NewNote{Subject: "s", Content: "c"})
		require.NoError(t, err)
		updated, err := repo.Update(ctx, note.ID, models.NotePatch{})
		require.NoError(t, err)
		assert.Equal(t, note, updated)

		_, err = repo.Update(ctx, note.ID+1000, models.NotePatch{})
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := newRepo(t).Update(ctx, 999, models.NotePatch{Content: strPtr("x")})
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		note, err := repo.Create(ctx, models.NewNote{Subject: "s", Content: "c"})
		require.NoError(t, err)

		ok, err := repo.Delete(ctx, note.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.GetByID(ctx, note.ID)
		assert.ErrorIs(t, err, ErrNoteNotFound)

		ok, err = repo.Delete(ctx, note.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ids are not reused", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Create(ctx, models.NewNote{Subject: "a", Content: "1"})
		require.NoError(t, err)
		b, err := repo.Create(ctx, models.NewNote{Subject: "b", Content: "2"})
		require.NoError(t, err)
		_, err = repo.Delete(ctx, b.ID)
		require.NoError(t, err)

		c, err := repo.Create(ctx, models.NewNote{Subject: "c", Content: "3"})
		require.NoError(t, err)
		assert.Greater(t, c.ID, b.ID)
		assert.NotEqual(t, a.ID, c.ID)
	})

	t.Run("unicode round trip", func(t *testing.T) {
		repo := newRepo(t)
		note, err := repo.Create(ctx, models.NewNote{Subject: "微積分", Content: "複習第一章"})
		require.NoError(t, err)
		got, err := repo.GetByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "微積分", got.Subject)
		assert.Equal(t, "複習第一章", got.Content)
	})
}

// testSubjectLimit covers the column width enforced by the SQL store.
func testSubjectLimit(t *testing.T, repo NoteRepository) {
	ctx := context.Background()

	_, err := repo.Create(ctx, models.NewNote{Subject: strings.Repeat("x", MaxSubjectLength+1), Content: "c"})
	require.Error(t, err)
	assert.Equal(t, errs.InvalidArgument, errs.CodeOf(err))

	note, err := repo.Create(ctx, models.NewNote{Subject: strings.Repeat("微", MaxSubjectLength), Content: "c"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, note.ID, models.NotePatch{Subject: strPtr(strings.Repeat("y", MaxSubjectLength+1))})
	assert.Equal(t, errs.InvalidArgument, errs.CodeOf(err))

	got, err := repo.GetByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("微", MaxSubjectLength), got.Subject)
}
