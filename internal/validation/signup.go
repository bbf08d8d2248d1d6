package validation

import "strings"

// SignupInput is the account registration form.
type SignupInput struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,min=3,max=150,username"`
	Password  string `form:"password" validate:"required,min=8,max=128,password"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

// Normalize trims surrounding whitespace from the name fields.
func (in *SignupInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
