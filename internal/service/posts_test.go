package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func formValues(m map[string]string) *forms.PostForm {
	return forms.BindPost(func(key string) string { return m[key] })
}

func TestPostService_Create(t *testing.T) {
	e := setupEnv(t)
	leo := e.user(t, "leo")
	cats := e.group(t, "cats")
	ctx := context.Background()

	post, err := e.writer.Create(ctx, leo, formValues(map[string]string{
		"text":  "  hello world  ",
		"group": fmt.Sprint(cats.ID),
	}))
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, "leo", post.Author.Username)
	require.NotNil(t, post.Group)
	assert.Equal(t, cats.ID, post.Group.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := e.pages.Group(ctx, "cats", "")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.PageObj.Items[0].ID)
}

func TestPostService_CreateInvalidPersistsNothing(t *testing.T) {
	e := setupEnv(t)
	leo := e.user(t, "leo")
	ctx := context.Background()

	tests := []struct {
		name  string
		input map[string]string
		field string
	}{
		{"Empty text", map[string]string{"text": ""}, "text"},
		{"Blank text", map[string]string{"text": "   "}, "text"},
		{"Unknown group", map[string]string{"text": "hi", "group": "77"}, "group"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := formValues(tt.input)
			post, err := e.writer.Create(ctx, leo, form)
			assert.Nil(t, post)
			assert.True(t, models.IsValidation(err))
			assert.NotEmpty(t, form.FieldErrors(tt.field))
			assert.Equal(t, int64(0), e.countPosts(t))
		})
	}
}

func TestPostService_UpdateMovesGroup(t *testing.T) {
	e := setupEnv(t)
	leo := e.user(t, "leo")
	cats := e.group(t, "cats")
	dogs := e.group(t, "dogs")
	created := e.createPosts(t, 1, leo, cats)[0]
	ctx := context.Background()

	updated, err := e.writer.Update(ctx, created.ID, formValues(map[string]string{
		"text":  "edited",
		"group": fmt.Sprint(dogs.ID),
	}))
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, dogs.ID, updated.Group.ID)
	assert.Equal(t, leo.ID, updated.AuthorID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	catPage, err := e.pages.Group(ctx, "cats", "")
	require.NoError(t, err)
	assert.Equal(t, 0, catPage.PageObj.Len())

	dogPage, err := e.pages.Group(ctx, "dogs", "")
	require.NoError(t, err)
	require.Equal(t, 1, dogPage.PageObj.Len())
	assert.Equal(t, created.ID, dogPage.PageObj.Items[0].ID)

	cleared, err := e.writer.Update(ctx, created.ID, formValues(map[string]string{"text": "no group"}))
	require.NoError(t, err)
	assert.Nil(t, cleared.Group)

	detail, err := e.pages.PostDetail(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Nil(t, detail.Group)
	assert.Equal(t, "no group", detail.Title)
}

func TestPostService_UpdateInvalidKeepsPost(t *testing.T) {
	e := setupEnv(t)
	leo := e.user(t, "leo")
	created := e.createPosts(t, 1, leo, nil)[0]
	ctx := context.Background()

	_, err := e.writer.Update(ctx, created.ID, formValues(map[string]string{"text": ""}))
	assert.True(t, models.IsValidation(err))

	post, err := e.posts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Text, post.Text)

	_, err = e.writer.Update(ctx, 9999, formValues(map[string]string{"text": "x"}))
	assert.True(t, models.IsNotFound(err))
}

type MockPostRepository struct {
	mock.Mock
	repository.PostRepository
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

type MockGroupChecker struct {
	mock.Mock
}

func (m *MockGroupChecker) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestPostService_CreateStoreError(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).Return(errors.New("disk full"))
	groups := new(MockGroupChecker)

	svc := NewPostService(repo, groups)
	_, err := svc.Create(context.Background(), &models.User{ID: 1}, formValues(map[string]string{"text": "hi"}))
	assert.EqualError(t, err, "disk full")
	repo.AssertExpectations(t)
	groups.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestPostService_GroupLookupError(t *testing.T) {
	groups := new(MockGroupChecker)
	groups.On("Exists", mock.Anything, uint(4)).Return(false, errors.New("db down"))

	svc := NewPostService(new(MockPostRepository), groups)
	_, err := svc.Create(context.Background(), &models.User{ID: 1}, formValues(map[string]string{"text": "hi", "group": "4"}))
	assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
}
