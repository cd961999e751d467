package api

import (
	"context"

	"libris/internal/models"
)

// CategoryService exposes the catalog's category tree.
type CategoryService struct {
	client *Client
}

// NewCategoryService constructs a CategoryService over the shared client.
func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

// List fetches every category in flat form.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.client.Get(ctx, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Get fetches one category with its nested children.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	if err := requireUUID(id, "category id"); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.client.Get(ctx, "/api/categories/"+id, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryRequest carries a category create or update payload.
type CategoryRequest struct {
	Name        string                `json:"name" validate:"required,min=2"`
	Slug        string                `json:"slug,omitempty" validate:"omitempty,slug"`
	Description string                `json:"description,omitempty"`
	ParentID    string                `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	Icon        string                `json:"icon,omitempty"`
	Status      models.ResourceStatus `json:"status,omitempty"`
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*models.Category, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.client.Post(ctx, "/api/categories", nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update replaces a category's editable fields.
func (s *CategoryService) Update(ctx context.Context, id string, req CategoryRequest) (*models.Category, error) {
	if err := requireUUID(id, "category id"); err != nil {
		return nil, err
	}
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.client.Put(ctx, "/api/categories/"+id, nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := requireUUID(id, "category id"); err != nil {
		return err
	}
	return s.client.Delete(ctx, "/api/categories/"+id, nil)
}
