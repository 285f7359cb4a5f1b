package store

import (
	"context"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
)

// CreateTag creates a tag. Tag names are unique via a secondary index.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	return s.Tags.Create(ctx, tag.ID, tag)
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.Tags.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("tag %q not found", id)
		}
		return nil, err
	}
	return tag, nil
}

// GetTagByName retrieves a tag by its unique display name.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	tag, err := s.Tags.GetByIndex(ctx, "name", name)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("tag %q not found", name)
		}
		return nil, err
	}
	return tag, nil
}

// GetTagsByIDs retrieves multiple tags in one batched read.
// Missing IDs are skipped - a tag deleted since the recipe referenced it
// simply drops out of the resolved name list.
func (s *Store) GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	return s.Tags.GetByIDs(ctx, ids)
}

// ListTags returns all tags.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0)
	for tag, err := range s.Tags.List(ctx) {
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
