// Package session keeps the logged-in user and one-shot flash messages in a Fiber session.
package session

import (
	"errors"
	"time"

	"bridgeforum/internal/cache"
	"bridgeforum/internal/config"
	"bridgeforum/internal/middleware"
	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
)

const (
	userIDKey    = "user_id"
	flashErrKey  = "flash_error"
	flashInfoKey = "flash_success"
)

// Flash holds the messages queued by the previous request.
type Flash struct {
	Error   string
	Success string
}

// Empty reports whether no message is queued.
func (f Flash) Empty() bool {
	return f.Error == "" && f.Success == ""
}

// Store wraps the Fiber session store with the forum's session keys.
type Store struct {
	store      *session.Store
	cookieName string
}

// New builds the session store. Sessions live in Redis when rdb is set and in process memory
// otherwise.
func New(cfg *config.Config, rdb *redis.Client) *Store {
	name := cfg.SessionCookieName
	if name == "" {
		name = "bridgeforum_session"
	}
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	sc := session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + name,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.SessionCookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	}
	if rdb != nil {
		sc.Storage = cache.NewSessionStorage(rdb)
	}

	return &Store{store: session.New(sc), cookieName: name}
}

// CookieName is the name of the session cookie.
func (s *Store) CookieName() string {
	return s.cookieName
}

// Login rotates the session id and binds it to user.
func (s *Store) Login(c *fiber.Ctx, user *models.User) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(userIDKey, user.ID)
	return sess.Save()
}

// Logout destroys the session and expires the cookie.
func (s *Store) Logout(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		return err
	}
	c.ClearCookie(s.cookieName)
	return nil
}

// UserID returns the id bound by Login, or 0 for anonymous visitors.
func (s *Store) UserID(c *fiber.Ctx) (uint, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return 0, err
	}
	id, _ := sess.Get(userIDKey).(uint)
	return id, nil
}

// SetFlash queues a message for the next rendered page.
func (s *Store) SetFlash(c *fiber.Ctx, f Flash) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	if f.Error != "" {
		sess.Set(flashErrKey, f.Error)
	}
	if f.Success != "" {
		sess.Set(flashInfoKey, f.Success)
	}
	return sess.Save()
}

// PopFlash returns and clears the queued messages.
func (s *Store) PopFlash(c *fiber.Ctx) (Flash, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return Flash{}, err
	}
	var f Flash
	f.Error, _ = sess.Get(flashErrKey).(string)
	f.Success, _ = sess.Get(flashInfoKey).(string)
	if f.Empty() {
		return f, nil
	}
	sess.Delete(flashErrKey)
	sess.Delete(flashInfoKey)
	return f, sess.Save()
}

// LoadUser resolves the session user into c.Locals("user"), "userID" and "isAdmin". A session
// pointing at a deleted account is treated as anonymous.
func (s *Store) LoadUser(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := s.UserID(c)
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session lookup failed", "error", err)
			return c.Next()
		}
		if id == 0 {
			return c.Next()
		}

		user, err := users.GetByID(c.UserContext(), id)
		if err != nil {
			if models.ErrorCode(err) != models.CodeNotFound {
				return err
			}
			return c.Next()
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		c.Locals("isAdmin", user.IsAdmin)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}

// CurrentUser returns the user set by LoadUser.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return nil, errNoUser
	}
	return user, nil
}

var errNoUser = errors.New("no user in session")
