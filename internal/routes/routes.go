package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abhishek200416/p2/internal/auth"
	"github.com/Abhishek200416/p2/internal/handlers"
	"github.com/Abhishek200416/p2/internal/media"
	"github.com/Abhishek200416/p2/internal/middleware"
)

func Setup(app *fiber.App, h *handlers.Handler, tokens *auth.TokenService, limiter *middleware.RateLimiter) {
	owner := middleware.RequireOwner(tokens)
	limited := limiter.ByIP()

	api := app.Group("/api")

	api.Get("/", h.Root)
	api.Post("/status", h.CreateStatusCheck)
	api.Get("/status", h.ListStatusChecks)
	api.Get("/github-repos", h.GithubRepos)

	api.Post("/login", h.Login)
	api.Get("/content", h.GetContent)
	api.Post("/save-content", owner, h.SaveContent)

	api.Post("/subscribe", limited, h.Subscribe)
	api.Get("/subscribers", owner, h.ListSubscribers)
	api.Post("/feedback", limited, h.SubmitFeedback)
	api.Get("/feedback", owner, h.ListFeedback)
	api.Post("/contact", limited, h.SubmitContact)
	api.Get("/contacts", owner, h.ListContacts)
	api.Get("/analytics", owner, h.Analytics)

	api.Post("/ai-assist", owner, h.AIAssist)

	super := api.Group("/super")
	super.Get("/health", h.SuperHealth)
	super.Get("/analytics/advanced", h.AdvancedAnalytics)

	video := super.Group("/video")
	video.Post("/upload", h.UploadMedia(media.KindVideo))
	video.Get("/serve/:filename", h.ServeMedia(media.KindVideo))
	video.Get("/list", h.ListMedia(media.KindVideo))
	video.Delete("/:id", h.DeleteMedia(media.KindVideo))

	image := super.Group("/image")
	image.Post("/upload", h.UploadMedia(media.KindImage))
	image.Get("/serve/:filename", h.ServeMedia(media.KindImage))
	image.Get("/list", h.ListMedia(media.KindImage))
	image.Delete("/:id", h.DeleteMedia(media.KindImage))

	aiGroup := super.Group("/ai")
	aiGroup.Post("/generate-content", h.GenerateContent)
	aiGroup.Post("/improve-content", h.ImproveContent)
	aiGroup.Post("/generate-css", h.GenerateCSS)
	aiGroup.Post("/design-suggestions", h.DesignSuggestions)
	aiGroup.Post("/color-palette", h.ColorPalette)
	aiGroup.Post("/analyze-element", h.AnalyzeElement)

	super.Post("/layout/suggest", h.SuggestLayout)
	super.Post("/dimensions/update", h.UpdateDimensions)
	super.Post("/styles/update", h.UpdateStyles)
}
