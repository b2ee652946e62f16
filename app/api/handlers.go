package api

import (
	"errors"

	"pukaar/app/service/orchestrator"
	"pukaar/app/service/screening"
	"pukaar/app/service/session"

	"github.com/gofiber/fiber/v2"
)

type chatRequest struct {
	Message   string                `json:"message" validate:"required"`
	SessionID string                `json:"session_id"`
	Metadata  orchestrator.Metadata `json:"metadata"`
}

type messageRequest struct {
	Message string `json:"message" validate:"required"`
}

type screeningRunRequest struct {
	Responses []string `json:"responses" validate:"required,min=1"`
	AgeDays   float64  `json:"age_days"`
}

func (s *Server) parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return nil
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	reply, err := s.orchestrator.ProcessMessage(c.Context(), req.SessionID, req.Message, req.Metadata)
	if err != nil {
		return err
	}

	return c.JSON(reply)
}

func (s *Server) handleTriage(c *fiber.Ctx) error {
	var req messageRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	result, err := s.triage.Triage(c.Context(), req.Message)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (s *Server) handleRedFlag(c *fiber.Ctx) error {
	var req messageRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	return c.JSON(s.redFlags.Detect(c.Context(), req.Message))
}

func (s *Server) handleClassify(c *fiber.Ctx) error {
	var req messageRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	return c.JSON(s.classifier.Classify(c.Context(), req.Message))
}

func (s *Server) handleConsultAdvice(c *fiber.Ctx) error {
	var req messageRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	return c.JSON(s.advice.ConsultAdvice(req.Message))
}

func (s *Server) handleScreeningConditions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"conditions": screening.Conditions()})
}

func (s *Server) handleScreeningInfo(c *fiber.Ctx) error {
	info, err := screening.Info(c.Params("condition"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(info)
}

func (s *Server) handleScreeningRun(c *fiber.Ctx) error {
	var req screeningRunRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	var (
		result screening.Result
		err    error
	)

	// An explicit age pins the assessment to the local scorer, the only
	// path that uses it.
	if req.AgeDays > 0 {
		result, err = s.screening.ScoreLocal(c.Params("condition"), req.Responses, req.AgeDays)
	} else {
		result, err = s.screening.Screen(c.Context(), c.Params("condition"), req.Responses)
	}

	if err != nil {
		if errors.Is(err, screening.ErrUnknownCondition) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		return err
	}

	return c.JSON(result)
}

func (s *Server) handleFollowUpOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"options": []string{
			"Book an online consultation",
			"Find nearby pediatrician",
		},
	})
}

func (s *Server) handleGetSession(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(sess)
}

func (s *Server) handleNextAction(c *fiber.Ctx) error {
	return c.JSON(s.flows.NextAction(c.Context(), c.Params("id")))
}

func (s *Server) handleDeleteSession(c *fiber.Ctx) error {
	deleted, err := s.sessions.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return session.ErrNotFound
	}

	return c.JSON(fiber.Map{"deleted": true})
}
