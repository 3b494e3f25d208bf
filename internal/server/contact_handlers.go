package server

import (
	"strings"

	"curiouslife/internal/middleware"
	"curiouslife/internal/models"
	"curiouslife/internal/observability"
	"curiouslife/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const maxContactMessageLen = 5000

// Contact handles POST /contact. The submission is relayed by email only;
// nothing is persisted.
func (s *Server) Contact(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}
	if err := validation.ValidateEmail(strings.TrimSpace(req.Email)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if req.Message == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Message is required"))
	}
	if len(req.Message) > maxContactMessageLen {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Message too long (max 5000 characters)"))
	}

	if err := s.mailer.SendContact(req.Name, strings.TrimSpace(req.Email), req.Message); err != nil {
		observability.ContactEmailsTotal.WithLabelValues("error").Inc()
		middleware.Logger.ErrorContext(c.UserContext(), "contact email delivery failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.ContactEmailsTotal.WithLabelValues("sent").Inc()
	return models.RespondSuccess(c, fiber.StatusOK, "Message sent", nil)
}
