package server

import (
	"log/slog"

	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError writes err in the JSON error envelope with the status its code maps to.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "api request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		if models.ErrorCode(err) == "" {
			err = models.NewInternalError(err)
		}
	}
	return models.RespondWithError(c, status, err)
}

// APIIndex handles GET /api/posts
func (s *Server) APIIndex(c *fiber.Ctx) error {
	data, err := s.pages.Index(c.UserContext(), c.Query("page"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// APIGroupPosts handles GET /api/groups/:slug/posts
func (s *Server) APIGroupPosts(c *fiber.Ctx) error {
	data, err := s.pages.Group(c.UserContext(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// APIProfilePosts handles GET /api/profile/:username/posts
func (s *Server) APIProfilePosts(c *fiber.Ctx) error {
	data, err := s.pages.Profile(c.UserContext(), c.Params("username"), c.Query("page"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// APIPostDetail handles GET /api/posts/:id
func (s *Server) APIPostDetail(c *fiber.Ctx, viewer Viewer) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := s.pages.PostDetail(c.UserContext(), id, viewer.Username())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}
