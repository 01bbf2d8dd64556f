package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// RespondWithPipelineError maps a typed pipeline failure to its status code
// and a JSON body carrying the user visible message and the error kind.
func RespondWithPipelineError(c *fiber.Ctx, err error) error {
	return c.Status(StatusForError(err)).JSON(fiber.Map{
		"status":  "error",
		"kind":    models.KindOf(err),
		"message": models.UserMessage(err),
	})
}

// StatusForError returns the HTTP status for err's kind.
func StatusForError(err error) int {
	switch models.KindOf(err) {
	case models.KindValidation:
		return fiber.StatusBadRequest
	case models.KindAuth:
		return fiber.StatusUnauthorized
	case models.KindRateLimit:
		return fiber.StatusTooManyRequests
	case models.KindUnsupportedMedia:
		return fiber.StatusUnsupportedMediaType
	case models.KindNetwork, models.KindFormat:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var errs []string
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			errs = append(errs, err.Error())
		}
		return errs
	}
	for _, fe := range verrs {
		element := fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			element = fmt.Sprintf("%s (value: %s)", element, fe.Param())
		}
		errs = append(errs, element)
	}
	return errs
}

// SanitizeInput trims surrounding whitespace from a form value.
func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
