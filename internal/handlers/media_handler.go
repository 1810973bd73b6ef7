package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhishek200416/p2/internal/apperr"
	"github.com/Abhishek200416/p2/internal/media"
)

// UploadMedia handles POST /api/super/{video,image}/upload (multipart
// field "file"). The declared content-type is trusted, not sniffed.
func (h *Handler) UploadMedia(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "file missing"})
		}
		f, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "cannot open file"})
		}
		defer f.Close()

		asset, err := h.media.Save(kind, fileHeader.Header.Get("Content-Type"), fileHeader.Filename, f)
		if err != nil {
			if errors.Is(err, apperr.ErrValidation) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": fmt.Sprintf("File must be a%s %s", article(kind), kind)})
			}
			h.logger.Errorf("%s upload: %v", kind, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Upload failed"})
		}
		return c.JSON(asset)
	}
}

// ServeMedia handles GET /api/super/{video,image}/serve/:filename.
func (h *Handler) ServeMedia(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Params("filename")
		path, err := h.media.Path(kind, filename)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": notFoundMsg(kind)})
		}
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%s", filename))
		return c.SendFile(path)
	}
}

// DeleteMedia handles DELETE /api/super/{video,image}/:id.
func (h *Handler) DeleteMedia(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := h.media.Delete(kind, id); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": notFoundMsg(kind)})
			}
			h.logger.Errorf("%s delete: %v", kind, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Delete failed"})
		}
		return c.JSON(fiber.Map{"message": fmt.Sprintf("%s deleted successfully", title(kind))})
	}
}

// ListMedia handles GET /api/super/{video,image}/list.
func (h *Handler) ListMedia(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		assets, err := h.media.List(kind)
		if err != nil {
			h.logger.Errorf("%s list: %v", kind, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "List failed"})
		}
		return c.JSON(fiber.Map{string(kind) + "s": assets})
	}
}

func article(kind media.Kind) string {
	if kind == media.KindImage {
		return "n"
	}
	return ""
}

func title(kind media.Kind) string {
	if kind == media.KindImage {
		return "Image"
	}
	return "Video"
}

func notFoundMsg(kind media.Kind) string {
	return title(kind) + " not found"
}
