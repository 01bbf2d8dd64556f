// Package pipeline drives one transcription request from upload to a
// formatted transcript.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/aiclient"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/formatter"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/media"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/metrics"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/session"
	"github.com/johnathanacortesd/johnascriber-sub000/models"
	"github.com/johnathanacortesd/johnascriber-sub000/utils"
)

var validate = validator.New()

// MediaProber extracts metadata from an upload.
type MediaProber interface {
	Probe(ctx context.Context, in models.MediaInput) media.Probe
}

type Pipeline struct {
	Client  aiclient.Transcriber
	Prober  MediaProber
	Policy  media.UploadPolicy
	Metrics *metrics.Metrics
	Logger  *logrus.Logger
	// Timeout bounds the remote call only.
	Timeout time.Duration
	// Model is the label used for metrics when a request names no model.
	Model string
}

func New(client aiclient.Transcriber, prober MediaProber, policy media.UploadPolicy, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		Client:  client,
		Prober:  prober,
		Policy:  policy,
		Logger:  logger,
		Timeout: aiclient.DefaultTimeout,
	}
}

// HandleTranscribeRequest runs one request against sess. On success the
// session is ready and holds the transcript; on any error it is failed and
// has nothing to export. A busy session is rejected and left untouched.
func (p *Pipeline) HandleTranscribeRequest(ctx context.Context, sess *session.Context, req models.TranscriptionRequest) (t *models.FormattedTranscript, err error) {
	// Multipart filenames are arbitrary bytes; the transcript must survive JSON export.
	req.Media.Filename = strings.ToValidUTF8(req.Media.Filename, "\uFFFD")
	if err := sess.Begin(req.Media.Filename); err != nil {
		return nil, err
	}

	log := p.Logger.WithFields(logrus.Fields{
		"session_id": sess.ID(),
		"filename":   req.Media.Filename,
	})
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Transcription pipeline panicked")
			t, err = nil, models.InternalError(fmt.Errorf("panic: %v", r), "Transcription failed unexpectedly")
		}
		if p.Metrics != nil {
			p.Metrics.ObserveTranscription(ctx, err)
		}
		if err != nil {
			sess.Fail(err)
			log.WithFields(logrus.Fields{
				"error_kind": models.KindOf(err),
				"error":      err.Error(),
			}).Warn("Transcription request failed")
			return
		}
		sess.Complete(t)
		log.WithFields(logrus.Fields{
			"segments":   len(t.Segments),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("Transcription request completed")
	}()

	return p.run(ctx, sess, req)
}

func (p *Pipeline) run(ctx context.Context, sess *session.Context, req models.TranscriptionRequest) (*models.FormattedTranscript, error) {
	opts := req.Options
	if err := validate.Struct(opts); err != nil {
		return nil, models.ValidationError("Invalid transcription options: %s", strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	in, err := p.Policy.Validate(req.Media)
	if err != nil {
		return nil, err
	}
	if p.Prober != nil {
		probe := p.Prober.Probe(ctx, in)
		if err := p.Policy.CheckDuration(probe); err != nil {
			return nil, err
		}
	}

	sess.Advance(session.StateTranscribing)
	callCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	callStart := time.Now()
	raw, err := p.Client.Transcribe(callCtx, in, opts)
	if p.Metrics != nil {
		p.Metrics.ObserveRemoteCall(ctx, p.modelLabel(opts), time.Since(callStart))
	}
	if err != nil {
		return nil, err
	}

	sess.Advance(session.StateFormatting)
	source := req.Media.Filename
	if source == "" {
		source = in.Filename
	}
	return formatter.Format(raw, source)
}

func (p *Pipeline) modelLabel(opts models.TranscriptionOptions) string {
	if opts.Model != "" {
		return opts.Model
	}
	if p.Model != "" {
		return p.Model
	}
	return "default"
}
