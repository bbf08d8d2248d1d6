package server

import (
	"errors"

	"yatube/internal/featureflags"
	"yatube/internal/models"
	"yatube/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// formField is one input of the signup and login pages.
type formField struct {
	Name   string
	Label  string
	Type   string
	Value  string
	Errors []string
}

type signupPage struct {
	Fields []formField
}

type loginPage struct {
	Fields []formField
	Next   string
	Error  string
}

func signupFields(in validation.SignupInput, errs map[string][]string) []formField {
	return []formField{
		{Name: "first_name", Label: "First name", Type: "text", Value: in.FirstName, Errors: errs["first_name"]},
		{Name: "last_name", Label: "Last name", Type: "text", Value: in.LastName, Errors: errs["last_name"]},
		{Name: "username", Label: "Username", Type: "text", Value: in.Username, Errors: errs["username"]},
		{Name: "password", Label: "Password", Type: "password", Errors: errs["password"]},
		{Name: "password2", Label: "Password confirmation", Type: "password", Errors: errs["password2"]},
	}
}

func loginFields(in validation.LoginInput, errs map[string][]string) []formField {
	return []formField{
		{Name: "username", Label: "Username", Type: "text", Value: in.Username, Errors: errs["username"]},
		{Name: "password", Label: "Password", Type: "password", Errors: errs["password"]},
	}
}

// SignupForm handles GET /auth/signup/
func (s *Server) SignupForm(c *fiber.Ctx, viewer Viewer) error {
	if !s.featureFlags.On(featureflags.Signup) {
		return models.NewNotFoundError("page", c.Path())
	}
	page := signupPage{Fields: signupFields(validation.SignupInput{}, nil)}
	return s.render(c, fiber.StatusOK, "users/signup", "Sign up", viewer, page)
}

// Signup handles POST /auth/signup/. The new account is logged in and sent to the index.
func (s *Server) Signup(c *fiber.Ctx, viewer Viewer) error {
	if !s.featureFlags.On(featureflags.Signup) {
		return models.NewNotFoundError("page", c.Path())
	}

	var in validation.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, errs, err := s.users.Register(c.UserContext(), in)
	if errs != nil {
		page := signupPage{Fields: signupFields(in, errs)}
		return s.render(c, fiber.StatusOK, "users/signup", "Sign up", viewer, page)
	}
	if err != nil {
		return err
	}

	if err := s.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect("/")
}

// LoginForm handles GET /auth/login/
func (s *Server) LoginForm(c *fiber.Ctx, viewer Viewer) error {
	page := loginPage{
		Fields: loginFields(validation.LoginInput{}, nil),
		Next:   safeNext(c.Query("next")),
	}
	return s.render(c, fiber.StatusOK, "users/login", "Log in", viewer, page)
}

// Login handles POST /auth/login/ and redirects to the local "next" path on success.
func (s *Server) Login(c *fiber.Ctx, viewer Viewer) error {
	var in validation.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	next := c.FormValue("next")
	if next == "" {
		next = c.Query("next")
	}
	next = safeNext(next)

	redisplay := func(errs map[string][]string, msg string) error {
		page := loginPage{Fields: loginFields(in, errs), Next: next, Error: msg}
		return s.render(c, fiber.StatusOK, "users/login", "Log in", viewer, page)
	}

	if errs := validation.Struct(in); errs != nil {
		return redisplay(errs, "")
	}

	user, err := s.users.Authenticate(c.UserContext(), in.Username, in.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeUnauthorized {
			return redisplay(nil, appErr.Message)
		}
		return err
	}

	if err := s.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect(next)
}

// Logout handles GET and POST /auth/logout/
func (s *Server) Logout(c *fiber.Ctx) error {
	s.endSession(c)
	return s.render(c, fiber.StatusOK, "users/logged_out", "Logged out", Viewer{}, nil)
}
