// Package web holds the embedded UI templates.
package web

import (
	"embed"
	"net/http"

	"github.com/Masterminds/sprig/v3"
	"github.com/gofiber/fiber/v2"
	fiberhtml "github.com/gofiber/template/html/v2"
)

//go:embed views/*
var viewsfs embed.FS

func RenderEngine() *fiberhtml.Engine {
	engine := fiberhtml.NewFileSystem(http.FS(viewsfs), ".html")
	engine.AddFuncMap(sprig.FuncMap())
	return engine
}

func NotFoundHandler(c *fiber.Ctx) error {
	if string(c.Context().Request.Header.ContentType()) == fiber.MIMEApplicationJSON || len(c.Accepts("html")) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Resource not found",
		})
	}
	return c.Status(fiber.StatusNotFound).Render("views/404", fiber.Map{"Title": "Not found"})
}
