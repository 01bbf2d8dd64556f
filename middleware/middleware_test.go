package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/session"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(RequestLogger(logger))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString(RequestID(c)) })
	app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok?secret=1", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	id := resp.Header.Get(fiber.HeaderXRequestID)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, string(body))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.Split(buf.Bytes(), []byte("\n"))[0], &entry))
	assert.Equal(t, id, entry["request_id"])
	assert.Equal(t, "/ok", entry["uri"])
	assert.Equal(t, "GET", entry["http_method"])
	assert.Equal(t, float64(200), entry["status_code"])
	assert.Equal(t, "info", entry["level"])

	buf.Reset()
	req := httptest.NewRequest("GET", "/missing", nil)
	given := uuid.NewString()
	req.Header.Set(fiber.HeaderXRequestID, given)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, given, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"level":"warning"`)
}

func TestRequestLoggerReplacesInvalidID(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(RequestLogger(logger))
	app.Get("/", func(c *fiber.Ctx) error { return nil })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "<script>")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEqual(t, "<script>", resp.Header.Get(fiber.HeaderXRequestID))
}

func sessionApp(t *testing.T) (*fiber.App, *session.Manager) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := fibersession.New(fibersession.Config{Expiration: time.Hour})
	manager := session.NewManager(time.Hour, logger)

	app := fiber.New()
	app.Use(Session(store, manager))
	app.Get("/id", func(c *fiber.Ctx) error {
		sctx, ok := SessionContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(sctx.ID())
	})
	app.Post("/end", func(c *fiber.Ctx) error {
		return EndSession(c, store, manager)
	})
	return app, manager
}

func call(t *testing.T, app *fiber.App, method, path string, cookies []*http.Cookie) (string, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Less(t, resp.StatusCode, 400)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body), resp.Cookies()
}

func TestSessionCookieBindsContext(t *testing.T) {
	app, manager := sessionApp(t)

	first, cookies := call(t, app, "GET", "/id", nil)
	require.NotEmpty(t, first)
	require.NotEmpty(t, cookies)

	again, _ := call(t, app, "GET", "/id", cookies)
	assert.Equal(t, first, again)

	other, _ := call(t, app, "GET", "/id", nil)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, manager.Len())

	old, ok := manager.Lookup(first)
	require.True(t, ok)

	call(t, app, "POST", "/end", cookies)
	_, ok = manager.Lookup(first)
	assert.False(t, ok)

	// A stale cookie never resurrects the ended context.
	fresh, _ := call(t, app, "GET", "/id", cookies)
	current, ok := manager.Lookup(fresh)
	require.True(t, ok)
	assert.NotSame(t, old, current)
}
