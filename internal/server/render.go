package server

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"bridgeforum/internal/middleware"
	"bridgeforum/internal/models"
	"bridgeforum/internal/session"
	"bridgeforum/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

func newViewEngine() (*html.Engine, error) {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.AddFuncMap(template.FuncMap{
		"isAuthor":    isAuthor,
		"displayName": func(u models.User) string { return u.DisplayName() },
		"formatDate":  func(t time.Time) string { return t.Local().Format("02/01/2006 15:04") },
		"dict":        dict,
	})
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return engine, nil
}

func isAuthor(user *models.User, ownerID uint) bool {
	return user != nil && user.ID != 0 && user.ID == ownerID
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs key/value pairs")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// render adds the session user and pending flash messages to data and renders the page.
func (s *Server) render(c *fiber.Ctx, page string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if user, err := session.CurrentUser(c); err == nil {
		data["CurrentUser"] = user
	}
	flash, err := s.sessions.PopFlash(c)
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "flash lookup failed", "error", err)
	}
	data["Flash"] = flash
	return c.Render(page, data)
}
