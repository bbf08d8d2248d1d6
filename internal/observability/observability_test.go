package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "yatube-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "test.span")
	assert.NotNil(t, ctx)
	span.SetError(nil)
	span.SetError(errors.New("boom"))
	span.End()
}

func TestDatabaseMetrics_TrackQuery(t *testing.T) {
	m := NewDatabaseMetrics("posts_test")
	before := testutil.CollectAndCount(DatabaseQueryLatency)

	done := m.TrackQuery("list")
	done()

	assert.Equal(t, before+1, testutil.CollectAndCount(DatabaseQueryLatency))
}

func TestRepoLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { Logger = prev })

	l := NewRepoLogger("posts")
	l.LogCreate(context.Background(), map[string]any{"post_id": 3})
	l.LogError(context.Background(), errors.New("db down"), "list")

	out := buf.String()
	assert.Contains(t, out, "table=posts")
	assert.Contains(t, out, "post_id=3")
	assert.Contains(t, out, "error=\"db down\"")

	RepoLoggingEnabled = false
	t.Cleanup(func() { RepoLoggingEnabled = true })
	buf.Reset()
	l.LogUpdate(context.Background(), nil)
	assert.Empty(t, buf.String())
}
