package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhishek200416/p2/internal/apperr"
	"github.com/Abhishek200416/p2/internal/models"
)

// GET /api/content: public read of the current document.
func (h *Handler) GetContent(c *fiber.Ctx) error {
	doc, err := h.content.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch content"})
	}
	return c.JSON(doc)
}

// POST /api/save-content: owner-only wholesale replace.
func (h *Handler) SaveContent(c *fiber.Ctx) error {
	var doc models.ContentDocument
	if err := json.Unmarshal(c.Body(), &doc); err != nil || doc == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "invalid content body"})
	}
	savedAt, err := h.content.Save(c.Context(), doc)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to save content"})
	}
	return c.JSON(fiber.Map{"message": "Content saved successfully", "timestamp": savedAt})
}
