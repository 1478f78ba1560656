package server

import (
	"errors"

	"bridgeforum/internal/middleware"
	"bridgeforum/internal/models"
	"bridgeforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Messages shown on the login page.
const (
	msgUserNotFound      = "Usuario no encontrado"
	msgIncorrectPassword = "Contraseña incorrecta"
	msgRegistered        = "Cuenta creada, ya puedes iniciar sesión"
)

// LoginPage handles GET /auth/login-page
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, "login", fiber.Map{"Title": "Entrar"})
}

// RegisterPage handles GET /auth/register-page
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{"Title": "Registro"})
}

// Register handles POST /auth/register
// @Summary Register
// @Description Create an account. Redirects to the login page on success and back to the register page on failure.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string false "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302 "Location: /auth/login-page"
// @Failure 302 "Location: /auth/register-page"
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	_, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		return s.redirectWithError(c, "/auth/register-page", err)
	}
	return s.redirectWithSuccess(c, middleware.LoginPagePath, msgRegistered)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Check credentials and start a session cookie.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302 "Location: /"
// @Failure 302 "Location: /auth/login-page"
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	user, err := s.authService.Authenticate(c.UserContext(), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			err = models.NewUnauthorizedError(msgUserNotFound)
		case errors.Is(err, service.ErrIncorrectPassword):
			err = models.NewUnauthorizedError(msgIncorrectPassword)
		}
		return s.redirectWithError(c, middleware.LoginPagePath, err)
	}

	if err := s.sessions.Login(c, user); err != nil {
		return respondText(c, models.NewInternalError(err))
	}
	return c.Redirect(middleware.HomePath, fiber.StatusFound)
}

// Logout handles POST /auth/logout
// @Summary Log out
// @Tags auth
// @Success 302 "Location: /"
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.sessions.Logout(c); err != nil {
		return respondText(c, models.NewInternalError(err))
	}
	return c.Redirect(middleware.HomePath, fiber.StatusFound)
}
