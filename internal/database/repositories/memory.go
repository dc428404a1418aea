package repositories

import (
	"context"
	"notesapi/internal/database/models"
	"slices"
	"sync"
)

// seedNotes are present whenever the memory store starts.
var seedNotes = []models.Note{
	{ID: 1, Subject: "Calculus", Content: "Review the definition of limits in chapter one."},
	{ID: 2, Subject: "Go", Content: "Learn how Fiber builds a RESTful API."},
	{ID: 3, Subject: "English", Content: "Memorize 10 new vocabulary words."},
}

type memoryNoteRepository struct {
	mu     sync.RWMutex
	notes  []models.Note
	nextID int64
}

// NewMemoryNoteRepository returns a process-local store holding the seed
// notes. Ids keep counting up after deletes and everything is lost on exit.
func NewMemoryNoteRepository() NoteRepository {
	return &memoryNoteRepository{
		notes:  slices.Clone(seedNotes),
		nextID: int64(len(seedNotes)) + 1,
	}
}

func (r *memoryNoteRepository) List(_ context.Context) ([]models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notes := make([]models.Note, len(r.notes))
	copy(notes, r.notes)
	return notes, nil
}

func (r *memoryNoteRepository) Create(_ context.Context, in models.NewNote) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note := models.Note{ID: r.nextID, Subject: in.Subject, Content: in.Content}
	r.notes = append(r.notes, note)
	r.nextID++
	return &note, nil
}

func (r *memoryNoteRepository) GetByID(_ context.Context, id int64) (*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	note := r.notes[i]
	return &note, nil
}

func (r *memoryNoteRepository) Update(_ context.Context, id int64, patch models.NotePatch) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	patch.Apply(&r.notes[i])
	note := r.notes[i]
	return &note, nil
}

func (r *memoryNoteRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return false, nil
	}
	r.notes = slices.Delete(r.notes, i, i+1)
	return true, nil
}

// index must be called with mu held.
func (r *memoryNoteRepository) index(id int64) int {
	return slices.IndexFunc(r.notes, func(n models.Note) bool { return n.ID == id })
}
