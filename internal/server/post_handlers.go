package server

import (
	"fmt"
	"net/url"

	"yatube/internal/forms"
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
func (s *Server) Index(c *fiber.Ctx, viewer Viewer) error {
	data, err := s.pages.Index(c.UserContext(), c.Query("page"))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/index", data.Title, viewer, data)
}

// GroupPosts handles GET /group/:slug/
func (s *Server) GroupPosts(c *fiber.Ctx, viewer Viewer) error {
	data, err := s.pages.Group(c.UserContext(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/group_list", data.Group.Title, viewer, data)
}

// Profile handles GET /profile/:username/
func (s *Server) Profile(c *fiber.Ctx, viewer Viewer) error {
	data, err := s.pages.Profile(c.UserContext(), c.Params("username"), c.Query("page"))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/profile", data.Title, viewer, data)
}

// PostDetail handles GET /posts/:id/
func (s *Server) PostDetail(c *fiber.Ctx, viewer Viewer) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	data, err := s.pages.PostDetail(c.UserContext(), id, viewer.Username())
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/post_detail", data.Title, viewer, data)
}

// CreatePostForm handles GET /create/
func (s *Server) CreatePostForm(c *fiber.Ctx, viewer Viewer) error {
	return s.renderPostForm(c, viewer, nil, 0)
}

// CreatePost handles POST /create/. A valid submission redirects to the
// author's profile; an invalid one redisplays the form with its errors.
func (s *Server) CreatePost(c *fiber.Ctx, viewer Viewer) error {
	form := bindPostForm(c)
	if _, err := s.posts.Create(c.UserContext(), viewer.User, form); err != nil {
		if models.IsValidation(err) {
			return s.renderPostForm(c, viewer, form, 0)
		}
		return err
	}
	return c.Redirect("/profile/" + url.PathEscape(viewer.Username()) + "/")
}

// EditPostForm handles GET /posts/:id/edit/
func (s *Server) EditPostForm(c *fiber.Ctx, viewer Viewer) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	data, err := s.pages.EditForm(c.UserContext(), id)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/create_post", "Edit post", viewer, data)
}

// EditPost handles POST /posts/:id/edit/. Any signed-in user may edit any post.
func (s *Server) EditPost(c *fiber.Ctx, viewer Viewer) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	form := bindPostForm(c)
	if _, err := s.posts.Update(c.UserContext(), id, form); err != nil {
		if models.IsValidation(err) {
			return s.renderPostForm(c, viewer, form, id)
		}
		return err
	}
	return c.Redirect(fmt.Sprintf("/posts/%d/", id))
}

func (s *Server) renderPostForm(c *fiber.Ctx, viewer Viewer, form *forms.PostForm, postID uint) error {
	data, err := s.pages.PostForm(c.UserContext(), form, postID)
	if err != nil {
		return err
	}
	title := "New post"
	if data.IsEdit {
		title = "Edit post"
	}
	return s.render(c, fiber.StatusOK, "posts/create_post", title, viewer, data)
}
