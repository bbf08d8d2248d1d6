package repository

import (
	"strings"
	"testing"
	"time"

	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

// setupSQLite returns a migrated in-memory database private to the test.
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(&config.Config{
		DBDriver:   "sqlite",
		SQLitePath: "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type fixtures struct {
	alice, bob *models.User
	cats, dogs *models.Group
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		alice: &models.User{Username: "alice", Password: "x"},
		bob:   &models.User{Username: "bob", Password: "x"},
		cats:  &models.Group{Title: "Cats", Slug: "cats"},
		dogs:  &models.Group{Title: "Dogs", Slug: "dogs"},
	}
	require.NoError(t, db.Create(f.alice).Error)
	require.NoError(t, db.Create(f.bob).Error)
	require.NoError(t, db.Create(f.cats).Error)
	require.NoError(t, db.Create(f.dogs).Error)
	return f
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func createPost(t *testing.T, db *gorm.DB, author *models.User, group *models.Group, text string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, CreatedAt: at}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, NewPostRepository(db).Create(t.Context(), post))
	return post
}
