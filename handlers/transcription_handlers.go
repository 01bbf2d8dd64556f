package handlers

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/johnathanacortesd/johnascriber-sub000/internal/export"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/media"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/session"
	"github.com/johnathanacortesd/johnascriber-sub000/middleware"
	"github.com/johnathanacortesd/johnascriber-sub000/models"
	"github.com/johnathanacortesd/johnascriber-sub000/utils"
)

// TranscriptSuccessResponse defines the structure for a successful transcription response.
type TranscriptSuccessResponse struct {
	Status string                     `json:"status"`
	Data   models.FormattedTranscript `json:"data"`
}

// ErrorResponse defines the structure for an error response.
type ErrorResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionStatus is the JSON view of a session.
type SessionStatus struct {
	State      session.State               `json:"state"`
	Source     string                      `json:"source,omitempty"`
	ErrorKind  models.ErrorKind            `json:"error_kind,omitempty"`
	Error      string                      `json:"error,omitempty"`
	Transcript *models.FormattedTranscript `json:"transcript,omitempty"`
}

// Index renders the upload page with the current session state.
func (h *ApplicationHandler) Index(c *fiber.Ctx) error {
	sctx, err := h.sessionContext(c)
	if err != nil {
		return err
	}
	return h.renderIndex(c, sctx, models.TranscriptionOptions{}, nil)
}

// TranscribeForm handles the upload form and renders the page with the result.
func (h *ApplicationHandler) TranscribeForm(c *fiber.Ctx) error {
	sctx, err := h.sessionContext(c)
	if err != nil {
		return err
	}

	opts, err := parseOptions(c)
	if err == nil {
		_, err = h.transcribe(c, sctx, opts)
	}
	if err != nil {
		c.Status(utils.StatusForError(err))
	}
	return h.renderIndex(c, sctx, opts, err)
}

// CreateTranscription godoc
// @Summary Transcribe an uploaded audio or video file
// @Description Uploads one media file, transcribes it with the configured speech-to-text API and returns the formatted transcript. The transcript is kept in the caller's session for export.
// @Tags transcriptions
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Audio or video file"
// @Param   language formData string false "ISO-639-1 language hint, e.g. en"
// @Param   response_format formData string false "segmented (default) or plain"
// @Param   temperature formData number false "Sampling temperature between 0 and 1"
// @Param   model formData string false "Model override"
// @Param   prompt formData string false "Context hint passed to the model"
// @Success 200 {object} TranscriptSuccessResponse "Transcript"
// @Failure 400 {object} ErrorResponse "Invalid upload or options, or the session is busy"
// @Failure 401 {object} ErrorResponse "Missing or rejected API credential"
// @Failure 415 {object} ErrorResponse "The API rejected the media"
// @Failure 429 {object} ErrorResponse "The API is rate limiting requests"
// @Failure 502 {object} ErrorResponse "The API could not be reached or returned a malformed response"
// @Router /api/v1/transcriptions [post]
func (h *ApplicationHandler) CreateTranscription(c *fiber.Ctx) error {
	sctx, err := h.sessionContext(c)
	if err != nil {
		return err
	}

	opts, err := parseOptions(c)
	if err != nil {
		return utils.RespondWithPipelineError(c, err)
	}
	transcript, err := h.transcribe(c, sctx, opts)
	if err != nil {
		return utils.RespondWithPipelineError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, transcript)
}

// GetSession godoc
// @Summary Current session state
// @Description Returns the state of the caller's session and its transcript once ready.
// @Tags sessions
// @Produce  json
// @Success 200 {object} SessionStatus
// @Router /api/v1/session [get]
func (h *ApplicationHandler) GetSession(c *fiber.Ctx) error {
	sctx, err := h.sessionContext(c)
	if err != nil {
		return err
	}

	snap := sctx.Snapshot()
	status := SessionStatus{
		State:      snap.State,
		Source:     snap.Source,
		Transcript: snap.Transcript,
	}
	if snap.LastError != nil {
		status.ErrorKind = models.KindOf(snap.LastError)
		status.Error = models.UserMessage(snap.LastError)
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// ExportTranscript godoc
// @Summary Download the session transcript
// @Description Downloads the completed transcript as JSON, SubRip or WebVTT. Subtitle formats need a timestamped transcript.
// @Tags transcriptions
// @Produce  json
// @Param   format path string true "json, srt or vtt"
// @Success 200 {object} models.FormattedTranscript
// @Failure 400 {object} ErrorResponse "No completed transcript, or subtitles requested for a plain transcript"
// @Router /export/transcript.{format} [get]
func (h *ApplicationHandler) ExportTranscript(format string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sctx, err := h.sessionContext(c)
		if err != nil {
			return err
		}

		transcript, err := sctx.Transcript()
		if err != nil {
			return utils.RespondWithPipelineError(c, err)
		}

		var (
			body        []byte
			contentType string
		)
		switch format {
		case "json":
			body, err = export.JSON(transcript)
			contentType = export.ContentTypeJSON
		case "srt":
			body, err = export.SRT(transcript)
			contentType = export.ContentTypeSRT
		case "vtt":
			body, err = export.WebVTT(transcript)
			contentType = export.ContentTypeVTT
		default:
			return utils.RespondWithError(c, fiber.StatusNotFound, "Unknown export format")
		}
		if err != nil {
			return utils.RespondWithPipelineError(c, err)
		}

		c.Attachment(exportFilename(transcript.Source, format))
		c.Set(fiber.HeaderContentType, contentType)
		return c.Status(fiber.StatusOK).Send(body)
	}
}

// ResetSession ends the caller's session so the next upload starts fresh.
func (h *ApplicationHandler) ResetSession(c *fiber.Ctx) error {
	sctx, err := h.sessionContext(c)
	if err != nil {
		return err
	}
	if err := sctx.Reset(); err != nil {
		if wantsJSON(c) {
			return utils.RespondWithPipelineError(c, err)
		}
		c.Status(utils.StatusForError(err))
		return h.renderIndex(c, sctx, models.TranscriptionOptions{}, err)
	}

	if err := middleware.EndSession(c, h.Store, h.Sessions); err != nil {
		return err
	}
	h.Logger.WithField("request_id", middleware.RequestID(c)).Info("Session reset")

	if wantsJSON(c) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "Session reset",
		})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Health reports that the server is up.
func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"message": "Transcriber is healthy",
	})
}

func (h *ApplicationHandler) transcribe(c *fiber.Ctx, sctx *session.Context, opts models.TranscriptionOptions) (*models.FormattedTranscript, error) {
	in, err := h.readUpload(c)
	if err != nil {
		return nil, err
	}

	h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"session_id": sctx.ID(),
		"filename":   in.Filename,
		"size_bytes": in.Size,
	}).Info("Received transcription request")

	return h.Pipeline.HandleTranscribeRequest(c.UserContext(), sctx, models.TranscriptionRequest{
		Media:   in,
		Options: opts,
	})
}

func (h *ApplicationHandler) readUpload(c *fiber.Ctx) (models.MediaInput, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return models.MediaInput{}, models.ValidationError("Choose an audio or video file to upload")
	}
	return h.Policy.ReadUpload(fh)
}

// UploadTooLarge renders the upload page for a request body over the server
// limit. The session middleware never ran, so an existing session is looked up
// but none is created.
func (h *ApplicationHandler) UploadTooLarge(c *fiber.Ctx) error {
	sctx := session.NewContext("")
	if sess, err := h.Store.Get(c); err == nil {
		if existing, ok := h.Sessions.Lookup(sess.ID()); ok {
			sctx = existing
		}
	}

	err := models.ValidationError("File is too large (limit %d bytes)", h.Policy.MaxBytes)
	c.Status(fiber.StatusRequestEntityTooLarge)
	return h.renderIndex(c, sctx, models.TranscriptionOptions{}, err)
}

// WantsPage reports whether the caller expects an HTML page rather than JSON.
func WantsPage(c *fiber.Ctx) bool {
	return !strings.HasPrefix(c.Path(), "/api/") && !wantsJSON(c)
}

func (h *ApplicationHandler) sessionContext(c *fiber.Ctx) (*session.Context, error) {
	sctx, ok := middleware.SessionContext(c)
	if !ok {
		h.Logger.WithField("path", c.Path()).Error("Session middleware is not installed")
		return nil, fiber.ErrInternalServerError
	}
	return sctx, nil
}

func (h *ApplicationHandler) renderIndex(c *fiber.Ctx, sctx *session.Context, opts models.TranscriptionOptions, err error) error {
	snap := sctx.Snapshot()
	if err == nil {
		err = snap.LastError
	}

	data := fiber.Map{
		"Title":       h.Title,
		"State":       snap.State,
		"Transcript":  snap.Transcript,
		"Options":     opts,
		"MaxUploadMB": h.Policy.MaxBytes >> 20,
	}
	if err != nil {
		data["Error"] = models.UserMessage(err)
		data["ErrorKind"] = models.KindOf(err)
	}
	return c.Render("views/index", data)
}

// parseOptions reads the optional form fields. Range and format checks happen
// in the pipeline; only a temperature that is not a number fails here.
func parseOptions(c *fiber.Ctx) (models.TranscriptionOptions, error) {
	opts := models.TranscriptionOptions{
		Model:          utils.SanitizeInput(c.FormValue("model")),
		Language:       utils.SanitizeInput(c.FormValue("language")),
		ResponseFormat: models.ResponseFormat(strings.ToLower(utils.SanitizeInput(c.FormValue("response_format")))),
		Prompt:         utils.SanitizeInput(c.FormValue("prompt")),
	}
	if raw := utils.SanitizeInput(c.FormValue("temperature")); raw != "" {
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return opts, models.ValidationError("Temperature must be a number between 0 and 1")
		}
		opts.Temperature = float32(v)
	}
	return opts, nil
}

func exportFilename(source, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if source == "" || base == "" || base == "." {
		return "transcript." + ext
	}
	return media.SafeFilename(base) + "-transcript." + ext
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
