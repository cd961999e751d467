package api

import (
	"context"

	"libris/internal/models"
)

// AuthorService exposes the catalog's author endpoints.
type AuthorService struct {
	client *Client
}

// NewAuthorService constructs an AuthorService over the shared client.
func NewAuthorService(client *Client) *AuthorService {
	return &AuthorService{client: client}
}

// List fetches every author.
func (s *AuthorService) List(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	if err := s.client.Get(ctx, "/api/authors", nil, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// Get fetches one author.
func (s *AuthorService) Get(ctx context.Context, id string) (*models.Author, error) {
	if err := requireUUID(id, "author id"); err != nil {
		return nil, err
	}

	var author models.Author
	if err := s.client.Get(ctx, "/api/authors/"+id, nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// AuthorRequest carries an author create or update payload. Dates use the
// backend's YYYY-MM-DD form.
type AuthorRequest struct {
	Name        string                `json:"name" validate:"required,min=2"`
	Slug        string                `json:"slug,omitempty" validate:"omitempty,slug"`
	Bio         string                `json:"bio,omitempty"`
	Email       string                `json:"email,omitempty" validate:"omitempty,email"`
	Website     string                `json:"website,omitempty" validate:"omitempty,url"`
	BirthDate   string                `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeathDate   string                `json:"death_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Nationality string                `json:"nationality,omitempty"`
	Status      models.ResourceStatus `json:"status,omitempty"`
}

// Create adds an author.
func (s *AuthorService) Create(ctx context.Context, req AuthorRequest) (*models.Author, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var author models.Author
	if err := s.client.Post(ctx, "/api/authors", nil, req, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// Update replaces an author's editable fields.
func (s *AuthorService) Update(ctx context.Context, id string, req AuthorRequest) (*models.Author, error) {
	if err := requireUUID(id, "author id"); err != nil {
		return nil, err
	}
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var author models.Author
	if err := s.client.Put(ctx, "/api/authors/"+id, nil, req, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// Delete removes an author.
func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if err := requireUUID(id, "author id"); err != nil {
		return err
	}
	return s.client.Delete(ctx, "/api/authors/"+id, nil)
}
