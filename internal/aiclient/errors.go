package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// classifyError maps SDK and transport failures onto the user facing error kinds.
// The HTTP status wins over the shape of the body.
func classifyError(err error) error {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		return classifyStatus(apiErr.HTTPStatusCode, err)
	case errors.As(err, &reqErr):
		return classifyStatus(reqErr.HTTPStatusCode, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return models.FormatError(err, "The transcription service returned a response that could not be read")
	case errors.Is(err, context.DeadlineExceeded):
		return models.NetworkError(err, "The transcription service did not respond in time")
	case errors.Is(err, context.Canceled):
		return models.NetworkError(err, "The transcription request was cancelled")
	}

	return models.NetworkError(err, "The transcription service could not be reached")
}

func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return models.AuthError(err, "The transcription service rejected the API credential")
	case status == http.StatusTooManyRequests:
		return models.RateLimitError(err, "The transcription service is rate limiting requests; try again later")
	case status == http.StatusBadRequest,
		status == http.StatusRequestEntityTooLarge,
		status == http.StatusUnsupportedMediaType,
		status == http.StatusUnprocessableEntity:
		return models.UnsupportedMediaError(err, "The transcription service could not process this file")
	case status == http.StatusNotFound, status == http.StatusMethodNotAllowed:
		return models.NetworkError(err, "The transcription endpoint was not found (HTTP %d); check the service base URL and model", status)
	case status >= 500:
		return models.NetworkError(err, "The transcription service is unavailable (HTTP %d)", status)
	default:
		return models.UnsupportedMediaError(err, "The transcription service rejected the request (HTTP %d)", status)
	}
}
