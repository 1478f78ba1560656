package server

import (
	"bridgeforum/internal/middleware"
	"bridgeforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	msgFeedbackSent   = "Formulario enviado correctamente"
	msgFeedbackFailed = "Error al enviar el feedback"
)

// Homepage handles GET /
func (s *Server) Homepage(c *fiber.Ctx) error {
	return s.render(c, "homepage", fiber.Map{"Title": "Inicio"})
}

// SubmitFeedback handles POST /feedback
// @Summary Submit weekly feedback
// @Description Stores the feedback and, when enabled, emails the staff. Renders the homepage with the outcome.
// @Tags feedback
// @Accept x-www-form-urlencoded
// @Produce html
// @Param frustration-level formData int true "Frustration level (1-10)"
// @Param feedback formData string true "Feedback text"
// @Success 200
// @Failure 400 {string} string
// @Router /feedback [post]
func (s *Server) SubmitFeedback(c *fiber.Ctx) error {
	level, err := parseFrustrationLevel(c.FormValue("frustration-level"))
	if err != nil {
		return respondText(c, err)
	}

	if _, err := s.feedbackService.Submit(c.UserContext(), service.SubmitFeedbackInput{
		User:             currentUser(c),
		FrustrationLevel: level,
		Body:             c.FormValue("feedback"),
	}); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "feedback submission failed", "error", err)
		status, _ := mapServiceError(err)
		c.Status(status)
		return s.render(c, "homepage", fiber.Map{"Title": "Inicio", "Error": msgFeedbackFailed})
	}
	return s.render(c, "homepage", fiber.Map{"Title": "Inicio", "Message": msgFeedbackSent})
}

// FeedbackReport handles GET /feedback/students
// @Summary Feedback report
// @Description Admin only. Every submission with the author's name, email and photo.
// @Tags feedback
// @Produce html
// @Success 200
// @Success 302 "Non-admins are sent to /"
// @Router /feedback/students [get]
func (s *Server) FeedbackReport(c *fiber.Ctx) error {
	posts, err := s.feedbackService.Report(c.UserContext())
	if err != nil {
		return respondText(c, err)
	}
	return s.render(c, "feedbacks", fiber.Map{"Title": "Feedback", "Posts": posts})
}
