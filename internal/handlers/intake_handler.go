package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abhishek200416/p2/internal/models"
	"github.com/Abhishek200416/p2/internal/services"
)

type subscribeReq struct {
	Email string `json:"email"`
}

// POST /api/subscribe: public, idempotent by email.
func (h *Handler) Subscribe(c *fiber.Ctx) error {
	var req subscribeReq
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "email required"})
	}
	status, err := h.intake.Subscribe(c.Context(), req.Email, c.IP())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Subscription failed"})
	}
	if status == services.SubscribeExisting {
		return c.JSON(fiber.Map{"message": "Already subscribed!", "status": "existing"})
	}
	return c.JSON(fiber.Map{"message": "You're on my radar! 🎯", "status": "new"})
}

// GET /api/subscribers: owner-only.
func (h *Handler) ListSubscribers(c *fiber.Ctx) error {
	subs, err := h.intake.ListSubscribers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch subscribers"})
	}
	return c.JSON(fiber.Map{"count": len(subs), "subscribers": subs})
}

type feedbackReq struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Category       string `json:"category"`
	Rating         *int   `json:"rating"`
	Message        string `json:"message"`
	WouldRecommend *bool  `json:"wouldRecommend"`
	ContactBack    bool   `json:"contactBack"`
}

// POST /api/feedback: public, append-only.
func (h *Handler) SubmitFeedback(c *fiber.Ctx) error {
	var req feedbackReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "invalid body"})
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "name, email and message are required"})
	}
	if req.Category == "" {
		req.Category = "general"
	}
	rating := 5
	if req.Rating != nil {
		rating = *req.Rating
	}
	wouldRecommend := true
	if req.WouldRecommend != nil {
		wouldRecommend = *req.WouldRecommend
	}

	fb := &models.Feedback{
		Name:           req.Name,
		Email:          req.Email,
		Company:        req.Company,
		Category:       req.Category,
		Rating:         rating,
		Message:        req.Message,
		WouldRecommend: wouldRecommend,
		ContactBack:    req.ContactBack,
		IPAddress:      c.IP(),
		UserAgent:      c.Get("User-Agent"),
	}
	id, err := h.intake.SubmitFeedback(c.Context(), fb)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to save feedback"})
	}
	return c.JSON(fiber.Map{"message": "Feedback received! Thank you.", "status": "success", "id": id})
}

// GET /api/feedback: owner-only, ids kept but IPs and user agents withheld.
func (h *Handler) ListFeedback(c *fiber.Ctx) error {
	list, err := h.intake.ListFeedback(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch feedback"})
	}
	projected := make([]fiber.Map, 0, len(list))
	for _, f := range list {
		projected = append(projected, fiber.Map{
			"id":             f.ID,
			"name":           f.Name,
			"email":          f.Email,
			"company":        f.Company,
			"category":       f.Category,
			"rating":         f.Rating,
			"message":        f.Message,
			"wouldRecommend": f.WouldRecommend,
			"contactBack":    f.ContactBack,
			"timestamp":      f.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"count": len(projected), "feedback": projected})
}

type contactReq struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Company          string `json:"company"`
	Phone            string `json:"phone"`
	ProjectType      string `json:"projectType"`
	Budget           string `json:"budget"`
	Timeline         string `json:"timeline"`
	Message          string `json:"message"`
	PreferredContact string `json:"preferredContact"`
	Urgency          string `json:"urgency"`
}

// POST /api/contact: public, append-only.
func (h *Handler) SubmitContact(c *fiber.Ctx) error {
	var req contactReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "invalid body"})
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "name, email and message are required"})
	}
	if req.ProjectType == "" {
		req.ProjectType = "mvp"
	}
	if req.Budget == "" {
		req.Budget = "under-25k"
	}
	if req.Timeline == "" {
		req.Timeline = "1-week"
	}
	if req.PreferredContact == "" {
		req.PreferredContact = "email"
	}
	if req.Urgency == "" {
		req.Urgency = "normal"
	}

	contact := &models.Contact{
		Name:             req.Name,
		Email:            req.Email,
		Company:          req.Company,
		Phone:            req.Phone,
		ProjectType:      req.ProjectType,
		Budget:           req.Budget,
		Timeline:         req.Timeline,
		Message:          req.Message,
		PreferredContact: req.PreferredContact,
		Urgency:          req.Urgency,
		IPAddress:        c.IP(),
	}
	id, err := h.intake.SubmitContact(c.Context(), contact)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to save contact"})
	}
	return c.JSON(fiber.Map{"message": "Message sent successfully! I'll get back to you soon.", "status": "success", "id": id})
}

// GET /api/contacts: owner-only.
func (h *Handler) ListContacts(c *fiber.Ctx) error {
	list, err := h.intake.ListContacts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch contacts"})
	}
	projected := make([]fiber.Map, 0, len(list))
	for _, ct := range list {
		projected = append(projected, fiber.Map{
			"id":               ct.ID,
			"name":             ct.Name,
			"email":            ct.Email,
			"company":          ct.Company,
			"phone":            ct.Phone,
			"projectType":      ct.ProjectType,
			"budget":           ct.Budget,
			"timeline":         ct.Timeline,
			"message":          ct.Message,
			"preferredContact": ct.PreferredContact,
			"urgency":          ct.Urgency,
			"status":           ct.Status,
			"timestamp":        ct.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"count": len(projected), "contacts": projected})
}

// GET /api/analytics: owner-only live aggregation.
func (h *Handler) Analytics(c *fiber.Ctx) error {
	summary, err := h.intake.Summarize(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch analytics"})
	}
	return c.JSON(summary)
}
