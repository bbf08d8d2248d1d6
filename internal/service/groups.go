package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

// SlugMaxLength matches the width of the groups.slug column.
const SlugMaxLength = 50

// GroupInput describes a group to create. An empty Slug is derived from Title.
type GroupInput struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// GroupFixtures is the YAML document accepted by Import.
type GroupFixtures struct {
	Groups []GroupInput `yaml:"groups"`
}

// GroupService is the administrative side of groups.
type GroupService struct {
	groups repository.GroupRepository
}

// NewGroupService returns a GroupService.
func NewGroupService(groups repository.GroupRepository) *GroupService {
	return &GroupService{groups: groups}
}

// MakeSlug derives a URL-safe slug from title, at most SlugMaxLength characters.
func MakeSlug(title string) string {
	s := slug.Make(title)
	if len(s) > SlugMaxLength {
		s = strings.TrimRight(s[:SlugMaxLength], "-")
	}
	return s
}

// Create validates in and stores the group.
func (s *GroupService) Create(ctx context.Context, in GroupInput) (*models.Group, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Group title is required")
	}

	groupSlug := strings.TrimSpace(in.Slug)
	if groupSlug == "" {
		groupSlug = MakeSlug(title)
	}
	if !slug.IsSlug(groupSlug) || len(groupSlug) > SlugMaxLength {
		return nil, models.NewValidationError(fmt.Sprintf("Invalid slug %q", groupSlug))
	}

	group := &models.Group{
		Title:       title,
		Slug:        groupSlug,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Import creates every group listed in a YAML fixtures document. It stops at
// the first failure and returns the groups created so far.
func (s *GroupService) Import(ctx context.Context, r io.Reader) ([]*models.Group, error) {
	var doc GroupFixtures
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid fixtures: %v", err))
	}

	created := make([]*models.Group, 0, len(doc.Groups))
	for i, in := range doc.Groups {
		group, err := s.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("group #%d (%s): %w", i+1, in.Title, err)
		}
		created = append(created, group)
	}
	return created, nil
}

// List returns every group ordered by title.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.groups.List(ctx)
}
