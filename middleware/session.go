package middleware

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/session"
)

const sessionContextKey = "transcription_session"

// Session binds the browser session cookie to its transcription context.
// Saving on every request keeps the cookie and store expiry sliding.
func Session(store *fibersession.Store, manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		id := sess.ID()
		if err := sess.Save(); err != nil {
			return err
		}

		c.Locals(sessionContextKey, manager.Get(id))
		return c.Next()
	}
}

// SessionContext returns the context bound by Session.
func SessionContext(c *fiber.Ctx) (*session.Context, bool) {
	sctx, ok := c.Locals(sessionContextKey).(*session.Context)
	return sctx, ok
}

// EndSession destroys the browser session and its transcription context.
func EndSession(c *fiber.Ctx, store *fibersession.Store, manager *session.Manager) error {
	if sctx, ok := SessionContext(c); ok {
		manager.End(sctx.ID())
	}
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	manager.End(sess.ID())
	return sess.Destroy()
}
