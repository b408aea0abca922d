// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/ssoogun/outlier.property/app/services"
	"github.com/ssoogun/outlier.property/config"
	"github.com/ssoogun/outlier.property/utils"
)

// Locals keys set by the session middleware
const (
	SessionIDLocal       = "session_id"
	FavouritesStoreLocal = "favourites_store"
)

// SessionMiddleware binds every request to a session-scoped favourites store.
// The session ID is an opaque cookie, not an identity: there is no
// authentication here, only isolation between concurrent sessions.
type SessionMiddleware struct {
	manager services.SessionManager
	cfg     config.SessionConfig
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(manager services.SessionManager, cfg config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{manager: manager, cfg: cfg}
}

// Resolve is the middleware function that attaches the session store to the
// request. A missing, unknown, or expired cookie gets a fresh session; the
// request never fails for session reasons.
func (m *SessionMiddleware) Resolve() fiber.Handler {
	return func(c fiber.Ctx) error {
		id, store := m.manager.Acquire(c.Cookies(utils.SessionCookieName))

		c.Cookie(&fiber.Cookie{
			Name:     utils.SessionCookieName,
			Value:    id,
			MaxAge:   int(m.cfg.IdleTTL.Seconds()),
			Secure:   m.cfg.CookieSecure,
			HTTPOnly: m.cfg.CookieHTTPOnly,
			SameSite: m.cfg.CookieSameSite,
			Path:     "/",
		})

		c.Locals(SessionIDLocal, id)
		c.Locals(FavouritesStoreLocal, store)

		return c.Next()
	}
}
