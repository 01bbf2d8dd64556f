package handlers

import (
	"context"

	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/media"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/session"
	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// TranscriptionPipeline defines the operation handlers expect from the pipeline.
// This allows for decoupling and easier testing.
type TranscriptionPipeline interface {
	HandleTranscribeRequest(ctx context.Context, sess *session.Context, req models.TranscriptionRequest) (*models.FormattedTranscript, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Pipeline TranscriptionPipeline
	Sessions *session.Manager
	Store    *fibersession.Store
	Policy   media.UploadPolicy
	Logger   *logrus.Logger
	Title    string
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(pipeline TranscriptionPipeline, sessions *session.Manager, store *fibersession.Store, policy media.UploadPolicy, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Pipeline: pipeline,
		Sessions: sessions,
		Store:    store,
		Policy:   policy,
		Logger:   logger,
		Title:    "Johnascriber",
	}
}
