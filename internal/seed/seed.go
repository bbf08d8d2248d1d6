// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

const batchSize = 100

// Options configures the seeder.
type Options struct {
	Users        int
	Groups       int
	PostsPerUser int
	// SkipBcrypt stores DemoPassword unhashed; such accounts cannot log in.
	SkipBcrypt bool
	// Seed makes the generated content reproducible when non-zero.
	Seed int64
	// MaxDays spreads post creation times over the last MaxDays days.
	MaxDays int
}

// Summary reports what a run created.
type Summary struct {
	Users  int
	Groups int
	Posts  int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed)}
}

// BuildUser returns an unsaved user with a unique username.
func (f *Factory) BuildUser(i int) (*models.User, error) {
	user := &models.User{
		Username:  fmt.Sprintf("%s%d", f.faker.Username(), i),
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
		Password:  DemoPassword,
	}
	if !f.opts.SkipBcrypt {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	return user, nil
}

// BuildGroup returns an unsaved group with a slug derived from its title.
func (f *Factory) BuildGroup(i int) *models.Group {
	title := fmt.Sprintf("%s %s", f.faker.HipsterWord(), f.faker.Noun())
	return &models.Group{
		Title:       title,
		Slug:        fmt.Sprintf("%s-%d", service.MakeSlug(title), i),
		Description: f.faker.Sentence(12),
	}
}

// BuildPost returns an unsaved post by author, filed under one of groups about
// two times in three.
func (f *Factory) BuildPost(author *models.User, groups []*models.Group) *models.Post {
	post := &models.Post{
		Text:     f.faker.Paragraph(1, 3, 12, "\n"),
		AuthorID: author.ID,
		CreatedAt: time.Now().Add(
			-time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute),
	}
	if len(groups) > 0 && f.faker.Number(0, 2) > 0 {
		g := groups[f.faker.Number(0, len(groups)-1)]
		post.GroupID = &g.ID
	}
	return post
}

// Run creates the configured number of users, groups and posts in one transaction.
func (f *Factory) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	users := make([]*models.User, 0, f.opts.Users)
	for i := 0; i < f.opts.Users; i++ {
		u, err := f.BuildUser(i)
		if err != nil {
			return sum, err
		}
		users = append(users, u)
	}
	groups := lo.Times(f.opts.Groups, f.BuildGroup)

	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(users) > 0 {
			if err := tx.CreateInBatches(users, batchSize).Error; err != nil {
				return fmt.Errorf("create users: %w", err)
			}
		}
		if len(groups) > 0 {
			if err := tx.CreateInBatches(groups, batchSize).Error; err != nil {
				return fmt.Errorf("create groups: %w", err)
			}
		}

		posts := lo.FlatMap(users, func(u *models.User, _ int) []*models.Post {
			return lo.Times(f.opts.PostsPerUser, func(int) *models.Post {
				return f.BuildPost(u, groups)
			})
		})
		for _, chunk := range lo.Chunk(posts, batchSize) {
			if err := tx.Omit("Author", "Group").Create(&chunk).Error; err != nil {
				return fmt.Errorf("create posts: %w", err)
			}
		}
		sum.Posts = len(posts)
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	sum.Users = len(users)
	sum.Groups = len(groups)
	return sum, nil
}

// Clean removes every post, group and user.
func Clean(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Post{}, &models.Group{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
