package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

func TestStatusForError(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		err  error
		want int
	}{
		{models.ValidationError("bad"), fiber.StatusBadRequest},
		{models.AuthError(cause, "key"), fiber.StatusUnauthorized},
		{models.NetworkError(cause, "down"), fiber.StatusBadGateway},
		{models.RateLimitError(cause, "slow"), fiber.StatusTooManyRequests},
		{models.UnsupportedMediaError(cause, "nope"), fiber.StatusUnsupportedMediaType},
		{models.FormatError(cause, "garbled"), fiber.StatusBadGateway},
		{cause, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForError(tt.err), "error %v", tt.err)
	}
}

func TestRespondWithPipelineError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithPipelineError(c, models.RateLimitError(errors.New("429 from upstream"), "Too many requests, try again later"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{
		"status":  "error",
		"kind":    "rate_limit",
		"message": "Too many requests, try again later",
	}, body)
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
		Size int    `validate:"lte=10"`
	}
	err := validator.New().Struct(payload{Size: 11})

	assert.Equal(t, []string{
		"Field 'Name' failed on the 'required' tag",
		"Field 'Size' failed on the 'lte' tag (value: 10)",
	}, FormatValidationErrors(err))
	assert.Equal(t, []string{"plain"}, FormatValidationErrors(errors.New("plain")))
	assert.Nil(t, FormatValidationErrors(nil))
}
