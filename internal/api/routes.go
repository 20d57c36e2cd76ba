package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RegisterRoutes wires middleware and endpoints. CORS is wide open: this
// core has no auth boundary.
func RegisterRoutes(app *fiber.App, rag Chatter) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "*",
	}))

	h := NewHandler(rag)

	app.Get("/health", h.Health)
	app.Post("/chat", h.Chat)
}
