package server

import (
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/web"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts the "id" route parameter as a positive uint. Anything
// else is reported as a missing post so the caller answers 404.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError("post", raw)
	}
	return uint(id), nil
}

// safeNext returns next when it is a local absolute path, "/" otherwise.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

// loginURL is the login page returning to next after a successful login.
func loginURL(next string) string {
	return "/auth/login/?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func bindPostForm(c *fiber.Ctx) *forms.PostForm {
	return forms.BindPost(func(key string) string {
		return c.FormValue(key)
	})
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// render executes the template name inside the base layout.
func (s *Server) render(c *fiber.Ctx, status int, name, title string, viewer Viewer, data any) error {
	return c.Status(status).Render(name, fiber.Map{
		"Title":  title,
		"Viewer": viewer,
		"Data":   data,
	}, web.Layout)
}

// requireFlag answers 404 while the named feature flag is off.
func (s *Server) requireFlag(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.featureFlags.On(name) {
			return models.NewNotFoundError("page", c.Path())
		}
		return c.Next()
	}
}

// NotFound is the catch-all for unknown paths.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return models.NewNotFoundError("page", c.Path())
}

// handleError is the fiber ErrorHandler. API paths get the JSON error
// envelope; everything else gets an HTML error page.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	ctx := c.UserContext()
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(ctx, "unhandled error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	if isAPI(c) {
		if status >= fiber.StatusInternalServerError && fe == nil {
			err = models.NewInternalError(err)
		}
		return models.RespondWithError(c, status, err)
	}

	viewer := viewerFrom(c)
	var rerr error
	switch {
	case status == fiber.StatusNotFound:
		rerr = s.render(c, status, "errors/404", "Page not found", viewer, fiber.Map{"Path": c.Path()})
	case status >= fiber.StatusInternalServerError && fe == nil:
		rid, _ := c.Locals("requestid").(string)
		rerr = s.render(c, status, "errors/500", "Server error", viewer, fiber.Map{"RequestID": rid})
	default:
		msg := err.Error()
		if fe != nil {
			msg = fe.Message
		}
		return c.Status(status).SendString(msg)
	}

	if rerr != nil {
		middleware.Logger.ErrorContext(ctx, "failed to render error page", slog.String("error", rerr.Error()))
		return c.SendStatus(status)
	}
	return nil
}
