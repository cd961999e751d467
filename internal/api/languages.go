package api

import (
	"context"

	"libris/internal/models"
)

// LanguageService exposes the supported document languages.
type LanguageService struct {
	client *Client
}

// NewLanguageService constructs a LanguageService over the shared client.
func NewLanguageService(client *Client) *LanguageService {
	return &LanguageService{client: client}
}

// List fetches every supported language.
func (s *LanguageService) List(ctx context.Context) ([]models.Language, error) {
	var languages []models.Language
	if err := s.client.Get(ctx, "/api/languages", nil, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// Get fetches one language.
func (s *LanguageService) Get(ctx context.Context, id string) (*models.Language, error) {
	if err := requireUUID(id, "language id"); err != nil {
		return nil, err
	}

	var language models.Language
	if err := s.client.Get(ctx, "/api/languages/"+id, nil, &language); err != nil {
		return nil, err
	}
	return &language, nil
}
