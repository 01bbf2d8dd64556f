package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the UI, API and export routes. withSession binds the
// caller's session and runs in front of every route that needs one.
func (h *ApplicationHandler) RegisterRoutes(app *fiber.App, withSession fiber.Handler) {
	app.Get("/health", Health)

	app.Get("/", withSession, h.Index)
	app.Post("/transcribe", withSession, h.TranscribeForm)
	app.Post("/session/reset", withSession, h.ResetSession)

	app.Get("/export/transcript.json", withSession, h.ExportTranscript("json"))
	app.Get("/export/transcript.srt", withSession, h.ExportTranscript("srt"))
	app.Get("/export/transcript.vtt", withSession, h.ExportTranscript("vtt"))

	apiV1 := app.Group("/api/v1", withSession)
	apiV1.Post("/transcriptions", h.CreateTranscription)
	apiV1.Get("/session", h.GetSession)
}
