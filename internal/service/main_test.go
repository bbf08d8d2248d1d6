package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	posts  repository.PostRepository
	groups repository.GroupRepository
	users  repository.UserRepository
	pages  *PageService
	writer *PostService
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(&config.Config{
		DBDriver:   "sqlite",
		SQLitePath: "file:svc_" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e := &env{
		db:     db,
		posts:  repository.NewPostRepository(db),
		groups: repository.NewGroupRepository(db),
		users:  repository.NewUserRepository(db),
	}
	e.pages = NewPageService(e.posts, e.groups, e.users, 10)
	e.writer = NewPostService(e.posts, e.groups)
	return e
}

func (e *env) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "x"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *env) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: strings.ToUpper(slug[:1]) + slug[1:], Slug: slug}
	require.NoError(t, e.db.Create(g).Error)
	return g
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// posts creates n posts by author in group, the i-th created i minutes after baseTime.
func (e *env) createPosts(t *testing.T, n int, author *models.User, group *models.Group) []*models.Post {
	t.Helper()
	out := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Post{
			Text:      fmt.Sprintf("post %d by %s", i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, e.posts.Create(t.Context(), p))
		out = append(out, p)
	}
	return out
}

func (e *env) countPosts(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Post{}).Count(&n).Error)
	return n
}
