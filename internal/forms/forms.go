// Package forms binds and validates HTML form submissions against an explicit field schema.
package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"yatube/internal/models"
)

// Error messages shown next to invalid fields.
const (
	MsgRequired      = "This field is required."
	MsgInvalidChoice = "Select a valid choice."
)

// TextMaxLength bounds the post body.
const TextMaxLength = 10000

// Kind is the type of value a Field accepts.
type Kind int

const (
	// Text is free-form text, trimmed before validation.
	Text Kind = iota
	// Choice is the id of an existing record, or empty when not required.
	Choice
)

// Field describes one input of a form.
type Field struct {
	Name      string
	Label     string
	Kind      Kind
	Required  bool
	MaxLength int
}

// PostFormSchema is the post create/edit form.
var PostFormSchema = []Field{
	{Name: "text", Label: "Text", Kind: Text, Required: true, MaxLength: TextMaxLength},
	{Name: "group", Label: "Group", Kind: Choice, Required: false},
}

// GroupChecker reports whether a group id refers to an existing group.
type GroupChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// PostForm holds submitted post values and the errors found for them.
type PostForm struct {
	Text   string
	Group  string
	Errors map[string][]string

	groupID *uint
}

// BindPost reads the post fields using get, typically the request's form accessor.
func BindPost(get func(key string) string) *PostForm {
	return &PostForm{
		Text:   get("text"),
		Group:  get("group"),
		Errors: map[string][]string{},
	}
}

// FromPost returns a form prefilled with post's current values.
func FromPost(post *models.Post) *PostForm {
	f := &PostForm{Text: post.Text, Errors: map[string][]string{}}
	if post.GroupID != nil {
		f.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return f
}

func (f *PostForm) value(name string) string {
	switch name {
	case "text":
		return f.Text
	case "group":
		return f.Group
	}
	return ""
}

func (f *PostForm) addError(field, msg string) {
	if f.Errors == nil {
		f.Errors = map[string][]string{}
	}
	f.Errors[field] = append(f.Errors[field], msg)
}

// Validate checks every field of PostFormSchema and records field errors on f.
// It returns an error only when the group lookup itself fails.
func (f *PostForm) Validate(ctx context.Context, groups GroupChecker) error {
	f.Errors = map[string][]string{}
	f.groupID = nil

	for _, field := range PostFormSchema {
		raw := strings.TrimSpace(f.value(field.Name))

		if raw == "" {
			if field.Required {
				f.addError(field.Name, MsgRequired)
			}
			continue
		}

		switch field.Kind {
		case Text:
			if n := utf8.RuneCountInString(raw); field.MaxLength > 0 && n > field.MaxLength {
				f.addError(field.Name, fmt.Sprintf(
					"Ensure this value has at most %d characters (it has %d).", field.MaxLength, n))
			}
		case Choice:
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				f.addError(field.Name, MsgInvalidChoice)
				continue
			}
			ok, err := groups.Exists(ctx, uint(id))
			if err != nil {
				return err
			}
			if !ok {
				f.addError(field.Name, MsgInvalidChoice)
				continue
			}
			gid := uint(id)
			f.groupID = &gid
		}
	}
	return nil
}

// Valid reports whether the last Validate found no errors.
func (f *PostForm) Valid() bool {
	return len(f.Errors) == 0
}

// CleanedText returns the trimmed text.
func (f *PostForm) CleanedText() string {
	return strings.TrimSpace(f.Text)
}

// GroupID returns the validated group id, or nil for no group.
func (f *PostForm) GroupID() *uint {
	return f.groupID
}

// Selected reports whether groupID is the submitted group choice.
func (f *PostForm) Selected(groupID uint) bool {
	return strings.TrimSpace(f.Group) == strconv.FormatUint(uint64(groupID), 10)
}

// FieldErrors returns the errors recorded for name.
func (f *PostForm) FieldErrors(name string) []string {
	return f.Errors[name]
}

// ErrorSummary joins all field errors, ordered by schema position.
func (f *PostForm) ErrorSummary() string {
	var parts []string
	for _, field := range PostFormSchema {
		for _, msg := range f.Errors[field.Name] {
			parts = append(parts, field.Name+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}
