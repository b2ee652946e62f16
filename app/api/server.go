package api

import (
	"context"
	"errors"
	"log/slog"

	"pukaar/app/config"
	"pukaar/app/service/advice"
	"pukaar/app/service/classifier"
	"pukaar/app/service/flow"
	"pukaar/app/service/orchestrator"
	"pukaar/app/service/redflag"
	"pukaar/app/service/screening"
	"pukaar/app/service/session"
	"pukaar/app/service/triage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
)

// Server exposes the chatbot over HTTP.
type Server struct {
	app      *fiber.App
	addr     string
	validate *validator.Validate

	orchestrator *orchestrator.Service
	sessions     *session.Service
	flows        *flow.Service
	classifier   *classifier.Service
	triage       *triage.Service
	redFlags     *redflag.Service
	screening    *screening.Service
	advice       *advice.Service
}

func New(di *do.Injector) (*Server, error) {
	cfg := do.MustInvoke[*config.Config](di)

	s := &Server{
		addr:         cfg.Server.Addr,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		orchestrator: do.MustInvoke[*orchestrator.Service](di),
		sessions:     do.MustInvoke[*session.Service](di),
		flows:        do.MustInvoke[*flow.Service](di),
		classifier:   do.MustInvoke[*classifier.Service](di),
		triage:       do.MustInvoke[*triage.Service](di),
		redFlags:     do.MustInvoke[*redflag.Service](di),
		screening:    do.MustInvoke[*screening.Service](di),
		advice:       do.MustInvoke[*advice.Service](di),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "pukaar",
		ErrorHandler: errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New())
	s.app.Use(requestLogger)

	s.registerRoutes()

	return s, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if errors.Is(err, session.ErrNotFound) {
		code = fiber.StatusNotFound
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func requestLogger(c *fiber.Ctx) error {
	err := c.Next()

	slog.Info("Request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
	)

	return err
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")

	api.Post("/chat", s.handleChat)
	api.Post("/triage", s.handleTriage)
	api.Post("/red-flag", s.handleRedFlag)
	api.Post("/context-classifier", s.handleClassify)
	api.Post("/consult-advice", s.handleConsultAdvice)

	api.Get("/screening", s.handleScreeningConditions)
	api.Get("/screening/:condition", s.handleScreeningInfo)
	api.Post("/screening/:condition/run", s.handleScreeningRun)

	api.Get("/followup/options", s.handleFollowUpOptions)

	api.Get("/session/:id", s.handleGetSession)
	api.Get("/session/:id/next-action", s.handleNextAction)
	api.Delete("/session/:id", s.handleDeleteSession)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()

		if err := s.app.Shutdown(); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Listening", "addr", s.addr)

	if err := s.app.Listen(s.addr); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
