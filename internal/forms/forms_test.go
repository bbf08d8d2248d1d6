package forms

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGroupChecker struct {
	mock.Mock
}

func (m *MockGroupChecker) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func values(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestPostForm_Validate(t *testing.T) {
	tests := []struct {
		name       string
		input      map[string]string
		setupMock  func(m *MockGroupChecker)
		wantErrors map[string][]string
		wantGroup  *uint
	}{
		{
			name:       "Text only",
			input:      map[string]string{"text": "  hello  "},
			wantErrors: map[string][]string{},
		},
		{
			name:  "Existing group",
			input: map[string]string{"text": "hello", "group": "2"},
			setupMock: func(m *MockGroupChecker) {
				m.On("Exists", mock.Anything, uint(2)).Return(true, nil)
			},
			wantErrors: map[string][]string{},
			wantGroup:  func() *uint { v := uint(2); return &v }(),
		},
		{
			name:       "Empty text",
			input:      map[string]string{"text": ""},
			wantErrors: map[string][]string{"text": {MsgRequired}},
		},
		{
			name:       "Whitespace text",
			input:      map[string]string{"text": " \n\t "},
			wantErrors: map[string][]string{"text": {MsgRequired}},
		},
		{
			name:  "Unknown group",
			input: map[string]string{"text": "hello", "group": "42"},
			setupMock: func(m *MockGroupChecker) {
				m.On("Exists", mock.Anything, uint(42)).Return(false, nil)
			},
			wantErrors: map[string][]string{"group": {MsgInvalidChoice}},
		},
		{
			name:       "Non-numeric group",
			input:      map[string]string{"text": "hello", "group": "cats"},
			wantErrors: map[string][]string{"group": {MsgInvalidChoice}},
		},
		{
			name:       "Zero group",
			input:      map[string]string{"text": "hello", "group": "0"},
			wantErrors: map[string][]string{"group": {MsgInvalidChoice}},
		},
		{
			name:  "Too long",
			input: map[string]string{"text": strings.Repeat("a", TextMaxLength+1)},
			wantErrors: map[string][]string{"text": {
				"Ensure this value has at most 10000 characters (it has 10001).",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(MockGroupChecker)
			if tt.setupMock != nil {
				tt.setupMock(checker)
			}

			form := BindPost(values(tt.input))
			err := form.Validate(context.Background(), checker)
			require.NoError(t, err)

			assert.Equal(t, tt.wantErrors, form.Errors)
			assert.Equal(t, len(tt.wantErrors) == 0, form.Valid())
			assert.Equal(t, tt.wantGroup, form.GroupID())
			checker.AssertExpectations(t)
		})
	}
}

func TestPostForm_ValidateLookupError(t *testing.T) {
	checker := new(MockGroupChecker)
	checker.On("Exists", mock.Anything, uint(3)).Return(false, errors.New("db down"))

	form := BindPost(values(map[string]string{"text": "hi", "group": "3"}))
	assert.EqualError(t, form.Validate(context.Background(), checker), "db down")
}

func TestPostForm_KeepsSubmittedValues(t *testing.T) {
	form := BindPost(values(map[string]string{"text": "", "group": "7"}))
	checker := new(MockGroupChecker)
	checker.On("Exists", mock.Anything, uint(7)).Return(true, nil)

	require.NoError(t, form.Validate(context.Background(), checker))
	assert.False(t, form.Valid())
	assert.Equal(t, "7", form.Group)
	assert.True(t, form.Selected(7))
	assert.False(t, form.Selected(8))
	assert.Equal(t, "text: "+MsgRequired, form.ErrorSummary())
}

func TestFromPost(t *testing.T) {
	gid := uint(5)
	form := FromPost(&models.Post{Text: "hello", GroupID: &gid})
	assert.Equal(t, "hello", form.Text)
	assert.Equal(t, "5", form.Group)

	form = FromPost(&models.Post{Text: "no group"})
	assert.Equal(t, "", form.Group)
	assert.Empty(t, form.FieldErrors("text"))
}
