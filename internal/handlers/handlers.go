package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Abhishek200416/p2/internal/ai"
	"github.com/Abhishek200416/p2/internal/auth"
	"github.com/Abhishek200416/p2/internal/media"
	"github.com/Abhishek200416/p2/internal/models"
	"github.com/Abhishek200416/p2/internal/services"
)

type Handler struct {
	tokens  *auth.TokenService
	content *services.ContentService
	intake  *services.IntakeService
	status  *services.StatusService
	media   *media.Store
	assist  *ai.Assist
	logger  *zap.SugaredLogger
}

func NewHandler(
	tokens *auth.TokenService,
	content *services.ContentService,
	intake *services.IntakeService,
	status *services.StatusService,
	mediaStore *media.Store,
	assist *ai.Assist,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		tokens:  tokens,
		content: content,
		intake:  intake,
		status:  status,
		media:   mediaStore,
		assist:  assist,
		logger:  logger,
	}
}

// GET /api/
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Abhishek Kolluri Portfolio API", "version": "1.0.0"})
}

// GET /api/github-repos
func (h *Handler) GithubRepos(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "GitHub integration coming soon", "status": "placeholder"})
}

type statusCheckReq struct {
	ClientName string `json:"client_name"`
}

// POST /api/status
func (h *Handler) CreateStatusCheck(c *fiber.Ctx) error {
	var req statusCheckReq
	if err := c.BodyParser(&req); err != nil || req.ClientName == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "client_name required"})
	}
	check, err := h.status.Create(c.Context(), req.ClientName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to create status check"})
	}
	return c.JSON(check)
}

// GET /api/status
func (h *Handler) ListStatusChecks(c *fiber.Ctx) error {
	list, err := h.status.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch status checks"})
	}
	if list == nil {
		list = []models.StatusCheck{}
	}
	return c.JSON(list)
}
