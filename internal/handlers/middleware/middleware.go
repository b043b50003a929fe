package middleware

import (
	"context"
	"pillar2/config"
	"pillar2/internal/logger"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	SESSION_COOKIE = "pillar2_session"
	SESSION_LOCAL  = "sessionID"
)

type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (string, bool, error)
}

type Middleware struct {
	sessions SessionResolver
	config   config.Config
	log      logger.Logger
}

func New(sessions SessionResolver, config config.Config) Middleware {
	return Middleware{
		sessions: sessions,
		config:   config,
		log:      logger.New("middleware"),
	}
}

// Session makes sure every request carries a live session id in its locals, issuing a
// new cookie when the client has none or presents an unknown one.
func (m Middleware) Session(c *fiber.Ctx) error {
	log := m.log.Function("Session")

	presented := c.Cookies(SESSION_COOKIE)

	sessionID, created, err := m.sessions.Resolve(c.Context(), presented)
	if err != nil {
		log.Er("failed to resolve session", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to resolve session", "error": err.Error()})
	}

	if created || sessionID != presented {
		log.Debug("Issued session cookie", "sessionID", sessionID)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SESSION_COOKIE,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(m.config.SessionTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	c.Locals(SESSION_LOCAL, sessionID)
	return c.Next()
}

func SessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(SESSION_LOCAL).(string)
	return sessionID
}
