package server

import (
	"notesapi/internal/database/dto"
	"notesapi/internal/database/repositories"
	"runtime"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

func (s *FiberServer) RegisterFiberRoutes(debug bool) {
	s.App.Get("/health", s.healthHandler)
	if debug {
		s.App.Get("/debug/memory", memoryHandler)
	}

	api := s.App.Group("/api")
	api.Get("/notes", s.getAllNotes)
	api.Post("/notes", s.createNote)
	api.Put("/notes/:id<int>", s.updateNote)
	api.Delete("/notes/:id<int>", s.deleteNote)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	if s.db == nil {
		return c.JSON(fiber.Map{"status": "up", "store": "memory"})
	}
	stats := s.db.Health(c.Context())
	if stats["status"] != "up" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(stats)
	}
	return c.JSON(stats)
}

func memoryHandler(c *fiber.Ctx) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return c.JSON(fiber.Map{
		"alloc":       humanize.IBytes(m.Alloc),
		"total_alloc": humanize.IBytes(m.TotalAlloc),
		"sys":         humanize.IBytes(m.Sys),
		"num_gc":      m.NumGC,
		"goroutines":  runtime.NumGoroutine(),
	})
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	notes, err := s.notes.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	in, err := dto.DecodeCreateNote(c.Body())
	if err != nil {
		return err
	}
	note, err := s.notes.Create(c.Context(), in)
	if err != nil {
		return err
	}
	s.log.Info().Int64("note_id", note.ID).Msg("note created")
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	// an unknown id wins over a bad body
	if _, err := s.notes.GetByID(c.Context(), id); err != nil {
		return err
	}
	patch, err := dto.DecodeNotePatch(c.Body())
	if err != nil {
		return err
	}
	note, err := s.notes.Update(c.Context(), id, patch)
	if err != nil {
		return err
	}
	s.log.Info().Int64("note_id", note.ID).Msg("note updated")
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	deleted, err := s.notes.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return repositories.ErrNoteNotFound
	}
	s.log.Info().Int64("note_id", id).Msg("note deleted")
	c.Status(fiber.StatusNoContent)
	return nil
}

func noteID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, repositories.ErrNoteNotFound
	}
	return id, nil
}
