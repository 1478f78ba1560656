package session

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bridgeforum/internal/config"
	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, store *Store, users repository.UserRepository) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(store.LoadUser(users))

	app.Post("/login/:id", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		return store.Login(c, &models.User{ID: uint(id)})
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		return store.Logout(c)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return c.SendString("anonymous")
		}
		return c.SendString(fmt.Sprintf("%s admin=%v", user.Email, c.Locals("isAdmin")))
	})
	app.Post("/flash", func(c *fiber.Ctx) error {
		return store.SetFlash(c, Flash{Error: "Contraseña incorrecta"})
	})
	app.Get("/flash", func(c *fiber.Ctx) error {
		f, err := store.PopFlash(c)
		if err != nil {
			return err
		}
		return c.SendString(f.Error)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, string(body)
}

func sessionCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestStore_LoginLoadsUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "ana", "ana@example.com", true)
	store := New(&config.Config{SessionCookieName: "sid", SessionTTLHours: 1}, nil)
	app := newTestApp(t, store, repository.NewUserRepository(db))

	_, body := do(t, app, http.MethodGet, "/whoami", nil)
	assert.Equal(t, "anonymous", body)

	resp, _ := do(t, app, http.MethodPost, fmt.Sprintf("/login/%d", user.ID), nil)
	cookie := sessionCookie(resp, "sid")
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	_, body = do(t, app, http.MethodGet, "/whoami", cookie)
	assert.Equal(t, "ana@example.com admin=true", body)

	do(t, app, http.MethodPost, "/logout", cookie)
	_, body = do(t, app, http.MethodGet, "/whoami", cookie)
	assert.Equal(t, "anonymous", body)
}

func TestStore_UnknownUserIsAnonymous(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := New(&config.Config{SessionCookieName: "sid"}, nil)
	app := newTestApp(t, store, repository.NewUserRepository(db))

	resp, _ := do(t, app, http.MethodPost, "/login/999", nil)
	cookie := sessionCookie(resp, "sid")
	require.NotNil(t, cookie)

	resp, body := do(t, app, http.MethodGet, "/whoami", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", body)
}

func TestStore_FlashIsReadOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	db := testutil.NewTestDB(t)
	store := New(&config.Config{SessionCookieName: "sid"}, rdb)
	app := newTestApp(t, store, repository.NewUserRepository(db))

	resp, _ := do(t, app, http.MethodPost, "/flash", nil)
	cookie := sessionCookie(resp, "sid")
	require.NotNil(t, cookie)
	assert.NotEmpty(t, mr.Keys(), "session data is kept in redis")

	_, body := do(t, app, http.MethodGet, "/flash", cookie)
	assert.Equal(t, "Contraseña incorrecta", body)

	_, body = do(t, app, http.MethodGet, "/flash", cookie)
	assert.Empty(t, body)
}
