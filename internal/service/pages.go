// Package service assembles page payloads and applies post writes on top of the repositories.
package service

import (
	"context"
	"fmt"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/observability"
	"yatube/internal/pagination"
	"yatube/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// IndexTitle is the heading of the global listing.
const IndexTitle = "Latest updates"

// PostPage is one page of posts, newest first.
type PostPage = pagination.Page[*models.Post]

// IndexContext is the payload of the global listing.
type IndexContext struct {
	PageObj *PostPage `json:"page_obj"`
	Title   string    `json:"title"`
}

// GroupContext is the payload of a group listing.
type GroupContext struct {
	PageObj *PostPage     `json:"page_obj"`
	Group   *models.Group `json:"group"`
}

// ProfileContext is the payload of an author listing.
type ProfileContext struct {
	PageObj   *PostPage    `json:"page_obj"`
	Title     string       `json:"title"`
	Author    *models.User `json:"author"`
	PostCount int64        `json:"post_count"`
}

// PostDetailContext is the payload of a single post.
type PostDetailContext struct {
	Post      *models.Post  `json:"post"`
	Title     string        `json:"title"`
	Group     *models.Group `json:"group"`
	PostCount int64         `json:"post_count"`
	Username  string        `json:"username"`
}

// PostFormContext is the payload of the create and edit forms.
type PostFormContext struct {
	Form   *forms.PostForm `json:"-"`
	IsEdit bool            `json:"is_edit"`
	PostID uint            `json:"post_id"`
	Groups []*models.Group `json:"groups"`
}

// PageService builds the read-side payloads.
type PageService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	pageSize int
}

// NewPageService returns a PageService paging listings by pageSize.
func NewPageService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	pageSize int,
) *PageService {
	if pageSize <= 0 {
		pageSize = pagination.PageSize
	}
	return &PageService{posts: posts, groups: groups, users: users, pageSize: pageSize}
}

// PageSize returns the number of posts per listing page.
func (s *PageService) PageSize() int {
	return s.pageSize
}

func (s *PageService) listing(ctx context.Context, view string, filter repository.PostFilter, rawPage string) (*PostPage, error) {
	paginator := pagination.Paginator[*models.Post]{
		Source: pagination.SourceFuncs[*models.Post]{
			CountFunc: func(ctx context.Context) (int64, error) {
				return s.posts.Count(ctx, filter)
			},
			FetchFunc: func(ctx context.Context, p pagination.FetchParams) ([]*models.Post, error) {
				return s.posts.List(ctx, filter, p.Limit, p.Offset)
			},
		},
		PageSize: s.pageSize,
	}

	page, err := paginator.Page(ctx, rawPage)
	if err != nil {
		return nil, err
	}

	observability.ListingPagesServed.WithLabelValues(view).Inc()
	if page.Clamped {
		observability.PageClamped.Inc()
	}
	return page, nil
}

// Index returns the requested page of all posts.
func (s *PageService) Index(ctx context.Context, rawPage string) (*IndexContext, error) {
	span, ctx := observability.NewSpan(ctx, "PageService.Index")
	defer span.End()

	page, err := s.listing(ctx, "index", repository.PostFilter{}, rawPage)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return &IndexContext{PageObj: page, Title: IndexTitle}, nil
}

// Group returns the requested page of the posts filed under the group with slug.
func (s *PageService) Group(ctx context.Context, slug, rawPage string) (*GroupContext, error) {
	span, ctx := observability.NewSpan(ctx, "PageService.Group", attribute.String("group.slug", slug))
	defer span.End()

	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	page, err := s.listing(ctx, "group", repository.ByGroup(group.ID), rawPage)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return &GroupContext{PageObj: page, Group: group}, nil
}

// Profile returns the requested page of the posts written by username.
func (s *PageService) Profile(ctx context.Context, username, rawPage string) (*ProfileContext, error) {
	span, ctx := observability.NewSpan(ctx, "PageService.Profile", attribute.String("author.username", username))
	defer span.End()

	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	page, err := s.listing(ctx, "profile", repository.ByAuthor(author.ID), rawPage)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return &ProfileContext{
		PageObj:   page,
		Title:     fmt.Sprintf("Profile of %s", author.Username),
		Author:    author,
		PostCount: page.Count,
	}, nil
}

// PostDetail returns a single post. viewer is the requesting user's name, empty when anonymous.
func (s *PageService) PostDetail(ctx context.Context, postID uint, viewer string) (*PostDetailContext, error) {
	span, ctx := observability.NewSpan(ctx, "PageService.PostDetail", attribute.Int64("post.id", int64(postID)))
	defer span.End()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &PostDetailContext{
		Post:      post,
		Title:     post.Title(),
		Group:     post.GroupOrNil(),
		PostCount: count,
		Username:  viewer,
	}, nil
}

// PostForm returns the create form, or the edit form when postID is non-zero.
func (s *PageService) PostForm(ctx context.Context, form *forms.PostForm, postID uint) (*PostFormContext, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	if form == nil {
		form = forms.BindPost(func(string) string { return "" })
	}
	return &PostFormContext{
		Form:   form,
		IsEdit: postID != 0,
		PostID: postID,
		Groups: groups,
	}, nil
}

// EditForm returns the edit form prefilled from the stored post.
func (s *PageService) EditForm(ctx context.Context, postID uint) (*PostFormContext, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.PostForm(ctx, forms.FromPost(post), post.ID)
}
