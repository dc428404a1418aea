package server

import (
	"errors"
	"notesapi/internal/config"
	"notesapi/internal/database"
	"notesapi/internal/database/repositories"
	"notesapi/internal/errs"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type FiberServer struct {
	*fiber.App

	notes repositories.NoteRepository
	// db is nil when notes live in memory.
	db  database.Service
	log zerolog.Logger
}

func New(cfg config.Config, notes repositories.NoteRepository, db database.Service, log zerolog.Logger) *FiberServer {
	server := &FiberServer{
		notes: notes,
		db:    db,
		log:   log,
	}
	server.App = fiber.New(fiber.Config{
		ServerHeader: "notesapi",
		AppName:      "notesapi",
		ErrorHandler: server.errorHandler,
	})

	server.App.Use(recover.New())
	server.App.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.AccessLog {
		server.App.Use(logger.New(logger.Config{
			Format: "${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: log,
		}))
	}
	server.App.Use(favicon.New())
	// preflight included; any origin unless configured otherwise
	server.App.Use("/api", cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	if cfg.Debug {
		server.App.Use(pprof.New())
	}

	server.RegisterFiberRoutes(cfg.Debug)
	return server
}

// errorHandler renders every failure as {"error": message}. Uncoded errors
// are storage or programming faults and are logged, not echoed.
func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	code := errs.CodeOf(err)
	if code == errs.Internal {
		s.log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.Status(errs.HTTPStatus(code)).JSON(fiber.Map{"error": errs.MessageOf(err)})
}
