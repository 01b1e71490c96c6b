package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber app with all routes registered. bodyLimit caps
// request bodies, uploads included.
func NewApp(h *Handler, bodyLimit int, log *slog.Logger) *fiber.App {
	if log == nil {
		log = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "smart-cv-builder",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code, msg := fiber.StatusInternalServerError, fiber.ErrInternalServerError.Message
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				code, msg = ferr.Code, ferr.Message
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("unhandled error", slog.String("path", c.Path()), slog.Any("err", err))
			}
			return c.Status(code).JSON(fiber.Map{"error": msg})
		},
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))

	Register(app, h)
	return app
}

// Register mounts the handler's routes on r.
func Register(r fiber.Router, h *Handler) {
	r.Get("/", h.UploadForm)
	r.Post("/", h.Upload)
	r.Get("/editor", h.EditorRedirect)
	r.Get("/editor/:id", h.Editor)
	r.Post("/cv_preview", h.Preview)
	r.Post("/cv_export", h.Export)
	r.Get("/healthz", h.Health)
}
