package repository

import (
	"context"
	"errors"

	"yatube/internal/models"
	"yatube/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
	log     *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db:      db,
		metrics: observability.NewDatabaseMetrics("users"),
		log:     observability.NewRepoLogger("users"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer r.metrics.TrackQuery("get")()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "get user", "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer r.metrics.TrackQuery("get_by_username")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "get user", "User", username)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer r.metrics.TrackQuery("create")()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("A user with that username already exists.")
		}
		return translate(err, "create user", "User", user.Username)
	}
	r.log.LogCreate(ctx, map[string]any{"user_id": user.ID})
	return nil
}
