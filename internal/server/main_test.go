package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecret   = "test-secret-key-12345678901234567890123456789012"
	testPassword = "correct-horse-42"
)

type testEnv struct {
	s  *Server
	db *gorm.DB
}

func setupServer(t *testing.T, flags string, rdb *redis.Client) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(&config.Config{
		DBDriver:   "sqlite",
		SQLitePath: "file:srv_" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	cfg := &config.Config{
		Port:         "0",
		Env:          "test",
		JWTSecret:    testSecret,
		DBDriver:     "sqlite",
		FeatureFlags: flags,
		PageSize:     10,
	}
	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = sqlDB.Close()
	})
	return &testEnv{s: s, db: db}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Username: username, Password: string(hash)}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, e.db.Create(g).Error)
	return g
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func (e *testEnv) createPosts(t *testing.T, n int, author *models.User, group *models.Group) []*models.Post {
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
		require.NoError(t, e.db.Create(p).Error)
		out = append(out, p)
	}
	return out
}

func (e *testEnv) countPosts(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Post{}).Count(&n).Error)
	return n
}

// session returns a cookie logged in as u.
func (e *testEnv) session(t *testing.T, u *models.User) *http.Cookie {
	t.Helper()
	token, _, err := e.s.issueToken(u.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookie, Value: token}
}

func (e *testEnv) do(t *testing.T, req *http.Request, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := e.s.App().Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func (e *testEnv) get(t *testing.T, path string, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (e *testEnv) post(t *testing.T, path string, values url.Values, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req, cookie)
}

func sessionFrom(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	return nil
}

func countArticles(body string) int {
	return strings.Count(body, `<article class="post">`)
}
