package api

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nbatyrova/mindmate/internal/model"
	"github.com/nbatyrova/mindmate/internal/util"
)

// Chatter is the retrieval-generation chain as the HTTP layer sees it.
type Chatter interface {
	Ask(ctx context.Context, query string) (*model.ChatResult, error)
}

// Handler holds the handlers' dependencies.
type Handler struct {
	rag Chatter
}

func NewHandler(rag Chatter) *Handler {
	return &Handler{rag: rag}
}

// Health is a liveness probe. It only answers once startup has finished,
// since routes are registered after the pipeline is built.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// Chat answers one question. Internal failures are logged in full and
// translated to a generic message so no error detail leaks to the client.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request, expected JSON: {\"query\":\"...\"}",
		})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "query must not be empty",
		})
	}

	result, err := h.rag.Ask(c.UserContext(), req.Query)
	if err != nil {
		log.Printf("chat: query %q failed: %v", util.TruncateRunes(req.Query, 120), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Error processing your question",
		})
	}
	return c.JSON(result)
}
