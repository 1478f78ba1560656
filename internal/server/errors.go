package server

import (
	"errors"

	"bridgeforum/internal/middleware"
	"bridgeforum/internal/models"
	"bridgeforum/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	msgInternal             = "Error interno del servidor"
	msgFrustrationNotNumber = "Nivel de frustración debe ser un número."
)

// mapServiceError returns the HTTP status and the text shown to the user for err.
// Internal errors never leak their message.
func mapServiceError(err error) (int, string) {
	status := models.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		return status, msgInternal
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return status, appErr.Message
	}
	return status, err.Error()
}

// respondText answers with a plain-text status line, logging server-side failures.
// Clients that only accept JSON get the models.ErrorResponse body instead.
func respondText(c *fiber.Ctx, err error) error {
	status, msg := mapServiceError(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(), "error", err)
	}
	if c.Accepts(fiber.MIMETextPlain, fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return models.RespondWithError(c, status, &models.AppError{Code: models.ErrorCode(err), Message: msg})
	}
	return c.Status(status).SendString(msg)
}

// redirectWithError queues err as a flash message and sends the browser back to a form.
func (s *Server) redirectWithError(c *fiber.Ctx, to string, err error) error {
	_, msg := mapServiceError(err)
	if ferr := s.sessions.SetFlash(c, session.Flash{Error: msg}); ferr != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash write failed", "error", ferr)
	}
	return c.Redirect(to, fiber.StatusFound)
}

// redirectWithSuccess queues a confirmation message before redirecting.
func (s *Server) redirectWithSuccess(c *fiber.Ctx, to, msg string) error {
	if ferr := s.sessions.SetFlash(c, session.Flash{Success: msg}); ferr != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash write failed", "error", ferr)
	}
	return c.Redirect(to, fiber.StatusFound)
}

// errorHandler is the Fiber-wide fallback for errors returned by handlers.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).SendString(fe.Message)
	}
	return respondText(c, err)
}
