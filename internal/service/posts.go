package service

import (
	"context"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/observability"
	"yatube/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostService validates and persists post writes.
type PostService struct {
	posts  repository.PostRepository
	groups forms.GroupChecker
}

// NewPostService returns a PostService.
func NewPostService(posts repository.PostRepository, groups forms.GroupChecker) *PostService {
	return &PostService{posts: posts, groups: groups}
}

func (s *PostService) validate(ctx context.Context, form *forms.PostForm) error {
	if err := form.Validate(ctx, s.groups); err != nil {
		return models.NewInternalError(err)
	}
	if !form.Valid() {
		return models.NewValidationError(form.ErrorSummary())
	}
	return nil
}

// Create validates form and stores a new post by author. On a validation error
// the form carries the field errors and nothing is stored.
func (s *PostService) Create(ctx context.Context, author *models.User, form *forms.PostForm) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Create", attribute.Int64("author.id", int64(author.ID)))
	defer span.End()

	if err := s.validate(ctx, form); err != nil {
		span.SetError(err)
		return nil, err
	}

	post := &models.Post{
		Text:     form.CleanedText(),
		AuthorID: author.ID,
		GroupID:  form.GroupID(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.PostsWritten.WithLabelValues("create").Inc()

	return s.posts.GetByID(ctx, post.ID)
}

// Update replaces the text and group of the post with postID. The author and
// creation time are left untouched. Any authenticated user may edit any post.
func (s *PostService) Update(ctx context.Context, postID uint, form *forms.PostForm) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Update", attribute.Int64("post.id", int64(postID)))
	defer span.End()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if err := s.validate(ctx, form); err != nil {
		span.SetError(err)
		return nil, err
	}

	post.Text = form.CleanedText()
	post.GroupID = form.GroupID()
	if err := s.posts.Update(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.PostsWritten.WithLabelValues("update").Inc()

	return s.posts.GetByID(ctx, post.ID)
}
