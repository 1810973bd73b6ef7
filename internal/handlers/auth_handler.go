package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type loginReq struct {
	Passphrase string `json:"passphrase"`
}

// POST /api/login: exchange the owner passphrase for a bearer token.
// The response never reveals which part of the check failed; there is
// only one credential.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "passphrase required"})
	}
	token, err := h.tokens.Issue(req.Passphrase)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid passphrase"})
	}
	return c.JSON(fiber.Map{
		"token":   token,
		"message": "Login successful. Edit mode enabled for 24 hours.",
	})
}
