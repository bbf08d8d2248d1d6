package repository

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post listing. The zero value selects every post.
type PostFilter struct {
	GroupID  *uint
	AuthorID *uint
}

// ByGroup selects the posts filed under groupID.
func ByGroup(groupID uint) PostFilter {
	return PostFilter{GroupID: &groupID}
}

// ByAuthor selects the posts written by authorID.
func ByAuthor(authorID uint) PostFilter {
	return PostFilter{AuthorID: &authorID}
}

// PostRepository defines the interface for post data operations.
// Listings are ordered newest first, ties broken by descending id.
type PostRepository interface {
	Count(ctx context.Context, filter PostFilter) (int64, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
}

// postRepository implements PostRepository
type postRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
	log     *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:      db,
		metrics: observability.NewDatabaseMetrics("posts"),
		log:     observability.NewRepoLogger("posts"),
	}
}

func applyFilter(q *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.GroupID != nil {
		q = q.Where("group_id = ?", *filter.GroupID)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	return q
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	defer r.metrics.TrackQuery("count")()

	var count int64
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).Count(&count).Error
	if err != nil {
		r.log.LogError(ctx, err, "count")
		return 0, translate(err, "count posts", "Posts", filter)
	}
	return count, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("list")()

	var posts []*models.Post
	err := applyFilter(r.db.WithContext(ctx), filter).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, translate(err, "list posts", "Posts", filter)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer r.metrics.TrackQuery("get")()

	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "get post", "Post", id)
	}
	return &post, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.Count(ctx, ByAuthor(authorID))
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("create")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return translate(err, "create post", "Post", post.ID)
	}
	r.log.LogCreate(ctx, map[string]any{"post_id": post.ID, "author_id": post.AuthorID})
	return nil
}

// Update persists the mutable fields of post: its text and group.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("update")()

	res := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
		})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "update")
		return translate(res.Error, "update post", "Post", post.ID)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update post", "Post", post.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"post_id": post.ID})
	return nil
}
