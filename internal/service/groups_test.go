package service

import (
	"context"
	"strings"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Cats and Dogs", "cats-and-dogs"},
		{"  Go!  Go!  ", "go-go"},
		{"Café Olé", "cafe-ole"},
		{strings.Repeat("word ", 20), strings.TrimRight(strings.Repeat("word-", 10), "-")},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := MakeSlug(tt.title)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), SlugMaxLength)
		})
	}
}

func TestGroupService_Create(t *testing.T) {
	e := setupEnv(t)
	svc := NewGroupService(e.groups)
	ctx := context.Background()

	group, err := svc.Create(ctx, GroupInput{Title: "Cats and Dogs", Description: " pets "})
	require.NoError(t, err)
	assert.Equal(t, "cats-and-dogs", group.Slug)
	assert.Equal(t, "pets", group.Description)

	_, err = svc.Create(ctx, GroupInput{Title: "Again", Slug: "cats-and-dogs"})
	assert.True(t, models.IsValidation(err))

	_, err = svc.Create(ctx, GroupInput{Title: ""})
	assert.True(t, models.IsValidation(err))

	_, err = svc.Create(ctx, GroupInput{Title: "Bad", Slug: "Not A Slug"})
	assert.True(t, models.IsValidation(err))
}

func TestGroupService_Import(t *testing.T) {
	e := setupEnv(t)
	svc := NewGroupService(e.groups)
	ctx := context.Background()

	doc := `
groups:
  - title: Cats
    description: All about cats
  - title: Dogs
    slug: good-dogs
`
	created, err := svc.Import(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "cats", created[0].Slug)
	assert.Equal(t, "good-dogs", created[1].Slug)

	groups, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	_, err = svc.Import(ctx, strings.NewReader("groups: [oops"))
	assert.True(t, models.IsValidation(err))
}
