package aiclient

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/media"
	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// Transcriber is the capability the pipeline depends on: media bytes in, raw transcript out.
type Transcriber interface {
	Transcribe(ctx context.Context, in models.MediaInput, opts models.TranscriptionOptions) (*models.RawTranscript, error)
}

// PathTranscriber is implemented by SDK clients that can only upload from a file path.
type PathTranscriber interface {
	TranscribeFile(ctx context.Context, path string, opts models.TranscriptionOptions) (*models.RawTranscript, error)
}

// FileBridge adapts a PathTranscriber to Transcriber by staging the media in a
// scoped temporary file that is removed before Transcribe returns.
type FileBridge struct {
	Next    PathTranscriber
	TempDir string
	Logger  *logrus.Logger
}

// NewFileBridge creates a FileBridge writing under tempDir (system temp dir when empty).
func NewFileBridge(next PathTranscriber, tempDir string, logger *logrus.Logger) *FileBridge {
	return &FileBridge{Next: next, TempDir: tempDir, Logger: logger}
}

// Transcribe stages the upload, calls the wrapped client exactly once and releases the file.
func (b *FileBridge) Transcribe(ctx context.Context, in models.MediaInput, opts models.TranscriptionOptions) (*models.RawTranscript, error) {
	staged, err := media.Stage(b.TempDir, in)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := staged.Release(); err != nil {
			b.Logger.WithError(err).Error("Failed to release staged upload")
		}
	}()

	start := time.Now()
	b.Logger.WithFields(logrus.Fields{
		"filename":        in.Filename,
		"mime_type":       in.MimeType,
		"size_bytes":      in.Size,
		"response_format": opts.ResponseFormat,
	}).Info("Sending transcription request")

	raw, err := b.Next.TranscribeFile(ctx, staged.Path(), opts)
	if err != nil {
		b.Logger.WithFields(logrus.Fields{
			"filename":   in.Filename,
			"error_kind": models.KindOf(err),
			"error":      err.Error(),
		}).Error("Transcription request failed")
		return nil, err
	}

	b.Logger.WithFields(logrus.Fields{
		"filename":   in.Filename,
		"segments":   len(raw.Segments),
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("Received transcription response")
	return raw, nil
}
