package api

import (
	"context"

	"libris/internal/models"
)

// PublisherService exposes the catalog's publisher endpoints.
type PublisherService struct {
	client *Client
}

// NewPublisherService constructs a PublisherService over the shared client.
func NewPublisherService(client *Client) *PublisherService {
	return &PublisherService{client: client}
}

// List fetches every publisher.
func (s *PublisherService) List(ctx context.Context) ([]models.Publisher, error) {
	var publishers []models.Publisher
	if err := s.client.Get(ctx, "/api/publishers", nil, &publishers); err != nil {
		return nil, err
	}
	return publishers, nil
}

// Get fetches one publisher.
func (s *PublisherService) Get(ctx context.Context, id string) (*models.Publisher, error) {
	if err := requireUUID(id, "publisher id"); err != nil {
		return nil, err
	}

	var publisher models.Publisher
	if err := s.client.Get(ctx, "/api/publishers/"+id, nil, &publisher); err != nil {
		return nil, err
	}
	return &publisher, nil
}

// PublisherRequest carries a publisher create or update payload.
type PublisherRequest struct {
	Name        string                `json:"name" validate:"required,min=2"`
	Description string                `json:"description,omitempty"`
	Website     string                `json:"website,omitempty" validate:"omitempty,url"`
	Email       string                `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string                `json:"phone,omitempty" validate:"omitempty,e164"`
	Address     string                `json:"address,omitempty"`
	Status      models.ResourceStatus `json:"status,omitempty"`
}

// Create adds a publisher.
func (s *PublisherService) Create(ctx context.Context, req PublisherRequest) (*models.Publisher, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var publisher models.Publisher
	if err := s.client.Post(ctx, "/api/publishers", nil, req, &publisher); err != nil {
		return nil, err
	}
	return &publisher, nil
}

// Update replaces a publisher's editable fields.
func (s *PublisherService) Update(ctx context.Context, id string, req PublisherRequest) (*models.Publisher, error) {
	if err := requireUUID(id, "publisher id"); err != nil {
		return nil, err
	}
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var publisher models.Publisher
	if err := s.client.Put(ctx, "/api/publishers/"+id, nil, req, &publisher); err != nil {
		return nil, err
	}
	return &publisher, nil
}

// Delete removes a publisher.
func (s *PublisherService) Delete(ctx context.Context, id string) error {
	if err := requireUUID(id, "publisher id"); err != nil {
		return err
	}
	return s.client.Delete(ctx, "/api/publishers/"+id, nil)
}
