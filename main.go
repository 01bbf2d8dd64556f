package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"github.com/johnathanacortesd/johnascriber-sub000/config"
	_ "github.com/johnathanacortesd/johnascriber-sub000/docs"
	"github.com/johnathanacortesd/johnascriber-sub000/handlers"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/aiclient"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/media"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/metrics"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/pipeline"
	"github.com/johnathanacortesd/johnascriber-sub000/internal/session"
	"github.com/johnathanacortesd/johnascriber-sub000/middleware"
	"github.com/johnathanacortesd/johnascriber-sub000/utils"
	"github.com/johnathanacortesd/johnascriber-sub000/web"
)

// @title Johnascriber API
// @version 1.0
// @description Upload audio or video, transcribe it with a hosted speech-to-text API and export the transcript.
// @BasePath /
func main() {
	bootLog := config.InitLogger("info", "json")
	config.LoadEnvFiles(bootLog)

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		bootLog.WithError(err).Fatal("Invalid configuration")
	}
	logger := config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	logger.WithFields(cfg.LogFields()).Info("Starting transcriber")
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, transcription requests will fail with an authentication error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize server")
	}
	go srv.sessions.Run(ctx, time.Minute)

	go func() {
		if err := srv.app.Listen(cfg.Address); err != nil {
			logger.WithError(err).Error("Server stopped listening")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down transcriber...")

	// In flight transcriptions get their full timeout to finish.
	if err := srv.app.ShutdownWithTimeout(cfg.Timeout + 5*time.Second); err != nil {
		logger.WithError(err).Error("Server shutdown did not complete")
	}
	if err := srv.metrics.Shutdown(context.Background()); err != nil {
		logger.WithError(err).Error("Metrics shutdown failed")
	}
	logger.Info("Transcriber shut down gracefully.")
}

type server struct {
	app      *fiber.App
	sessions *session.Manager
	metrics  *metrics.Metrics
}

func newServer(cfg *config.Config, logger *logrus.Logger) (*server, error) {
	m, err := metrics.SetupMetrics()
	if err != nil {
		return nil, err
	}

	client := aiclient.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.Timeout)
	bridge := aiclient.NewFileBridge(client, cfg.TempDir, logger)
	policy := media.NewUploadPolicy(cfg.MaxUploadBytes, cfg.MaxMediaDuration)

	p := pipeline.New(bridge, media.NewProber(logger), policy, logger)
	p.Metrics = m
	p.Timeout = cfg.Timeout
	p.Model = cfg.Model

	store := fibersession.New(fibersession.Config{
		Expiration:     cfg.SessionTTL,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
	sessions := session.NewManager(cfg.SessionTTL, logger)
	handler := handlers.NewApplicationHandler(p, sessions, store, policy, logger)

	app := fiber.New(fiber.Config{
		AppName:      "johnascriber",
		Views:        web.RenderEngine(),
		BodyLimit:    int(cfg.MaxUploadBytes) + 1<<20,
		ErrorHandler: errorHandler(logger, handler),
	})

	app.Use(fiberrecover.New(fiberrecover.Config{EnableStackTrace: true}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(metrics.APIMiddleware(m))

	app.Get("/metrics", m.Handler())
	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	handler.RegisterRoutes(app, middleware.Session(store, sessions))
	app.Use(web.NotFoundHandler)

	return &server{app: app, sessions: sessions, metrics: m}, nil
}

func errorHandler(logger *logrus.Logger, h *handlers.ApplicationHandler) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An unexpected error occurred"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			// Oversized uploads are refused before any handler runs.
			if code == fiber.StatusRequestEntityTooLarge && handlers.WantsPage(c) {
				return h.UploadTooLarge(c)
			}
		} else {
			logger.WithFields(logrus.Fields{
				"request_id": middleware.RequestID(c),
				"error":      err.Error(),
			}).Error("Unhandled error")
		}
		return utils.RespondWithError(c, code, message)
	}
}
