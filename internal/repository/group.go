package repository

import (
	"context"
	"errors"

	"yatube/internal/cache"
	"yatube/internal/models"
	"yatube/internal/observability"

	"gorm.io/gorm"
)

// GroupRepository defines read access to groups plus administrative creation.
type GroupRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
}

type groupRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
	log     *observability.RepoLogger
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{
		db:      db,
		metrics: observability.NewDatabaseMetrics("groups"),
		log:     observability.NewRepoLogger("groups"),
	}
}

// GetBySlug is served from Redis when available.
func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := cache.Aside(ctx, cache.GroupKey(slug), &group, cache.GroupTTL, func() error {
		defer r.metrics.TrackQuery("get_by_slug")()
		if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
			return translate(err, "get group", "Group", slug)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	defer r.metrics.TrackQuery("get")()

	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err, "get group", "Group", id)
	}
	return &group, nil
}

func (r *groupRepository) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if models.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// List returns every group ordered by title.
func (r *groupRepository) List(ctx context.Context) ([]*models.Group, error) {
	defer r.metrics.TrackQuery("list")()

	var groups []*models.Group
	if err := r.db.WithContext(ctx).Order("title ASC").Order("id ASC").Find(&groups).Error; err != nil {
		return nil, translate(err, "list groups", "Groups", "")
	}
	return groups, nil
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	defer r.metrics.TrackQuery("create")()

	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("Group with this slug already exists.")
		}
		return translate(err, "create group", "Group", group.Slug)
	}
	cache.InvalidateGroup(ctx, group.Slug)
	r.log.LogCreate(ctx, map[string]any{"group_id": group.ID, "slug": group.Slug})
	return nil
}
