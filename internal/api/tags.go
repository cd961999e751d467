package api

import (
	"context"

	"libris/internal/models"
)

// TagService exposes the catalog's tag endpoints.
type TagService struct {
	client *Client
}

// NewTagService constructs a TagService over the shared client.
func NewTagService(client *Client) *TagService {
	return &TagService{client: client}
}

// List fetches every tag.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.client.Get(ctx, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Get fetches one tag.
func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	if err := requireUUID(id, "tag id"); err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := s.client.Get(ctx, "/api/tags/"+id, nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// TagRequest carries a tag create or update payload.
type TagRequest struct {
	Name        string                `json:"name" validate:"required,min=2"`
	Slug        string                `json:"slug,omitempty" validate:"omitempty,slug"`
	Description string                `json:"description,omitempty"`
	Status      models.ResourceStatus `json:"status,omitempty"`
}

// Create adds a tag.
func (s *TagService) Create(ctx context.Context, req TagRequest) (*models.Tag, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := s.client.Post(ctx, "/api/tags", nil, req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update replaces a tag's editable fields.
func (s *TagService) Update(ctx context.Context, id string, req TagRequest) (*models.Tag, error) {
	if err := requireUUID(id, "tag id"); err != nil {
		return nil, err
	}
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := s.client.Put(ctx, "/api/tags/"+id, nil, req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes a tag.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := requireUUID(id, "tag id"); err != nil {
		return err
	}
	return s.client.Delete(ctx, "/api/tags/"+id, nil)
}
