package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notesapi/internal/database"
	"notesapi/internal/database/models"
	"notesapi/internal/errs"
	"unicode/utf8"
)

// MaxSubjectLength is the width of the notes.subject column.
const MaxSubjectLength = 100

var ErrNoteNotFound = errs.NewNotFound("note not found")

// NoteRepository is the storage contract the HTTP layer depends on. The
// memory and SQL implementations are interchangeable.
type NoteRepository interface {
	List(ctx context.Context) ([]models.Note, error)
	Create(ctx context.Context, in models.NewNote) (*models.Note, error)
	// GetByID returns ErrNoteNotFound when no note has the id.
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	// Update overwrites the fields set in patch. It returns ErrNoteNotFound
	// when no note has the id.
	Update(ctx context.Context, id int64, patch models.NotePatch) (*models.Note, error)
	// Delete reports whether a note was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}

type noteRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewNoteRepository(db *sql.DB, dialect database.Dialect) NoteRepository {
	return &noteRepository{db: db, dialect: dialect}
}

func (r *noteRepository) List(ctx context.Context) ([]models.Note, error) {
	query := `SELECT id, subject, content FROM notes ORDER BY id`
	result, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer result.Close()
	notes := []models.Note{}
	for result.Next() {
		var note models.Note
		if err := result.Scan(&note.ID, &note.Subject, &note.Content); err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) Create(ctx context.Context, in models.NewNote) (*models.Note, error) {
	if err := checkSubject(in.Subject); err != nil {
		return nil, err
	}
	note := models.Note{Subject: in.Subject, Content: in.Content}
	query := `INSERT INTO notes (subject, content) VALUES ($1, $2)`
	if r.dialect.SupportsReturning() {
		err := r.db.QueryRowContext(ctx, query+` RETURNING id`, in.Subject, in.Content).Scan(&note.ID)
		if err != nil {
			return nil, fmt.Errorf("error creating note: %w", err)
		}
		return &note, nil
	}
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), in.Subject, in.Content)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	if note.ID, err = result.LastInsertId(); err != nil {
		return nil, fmt.Errorf("error reading note id: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	return getNote(ctx, r.db, r.dialect, id)
}

func (r *noteRepository) Update(ctx context.Context, id int64, patch models.NotePatch) (*models.Note, error) {
	if patch.Subject != nil {
		if err := checkSubject(*patch.Subject); err != nil {
			return nil, err
		}
	}
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting update: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE notes
		SET subject = COALESCE($1, subject), content = COALESCE($2, content)
		WHERE id = $3`
	result, err := tx.ExecContext(ctx, r.dialect.Rebind(query), nullable(patch.Subject), nullable(patch.Content), id)
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNoteNotFound
	}

	note, err := getNote(ctx, tx, r.dialect, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing update: %w", err)
	}
	return note, nil
}

func (r *noteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM notes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), id)
	if err != nil {
		return false, fmt.Errorf("error deleting note: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getNote(ctx context.Context, q queryRower, dialect database.Dialect, id int64) (*models.Note, error) {
	note := models.Note{}
	query := `SELECT id, subject, content FROM notes WHERE id = $1`
	err := q.QueryRowContext(ctx, dialect.Rebind(query), id).Scan(&note.ID, &note.Subject, &note.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return &note, nil
}

func checkSubject(subject string) error {
	if utf8.RuneCountInString(subject) > MaxSubjectLength {
		return errs.NewValidation(fmt.Sprintf("'subject' must be at most %d characters", MaxSubjectLength))
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
