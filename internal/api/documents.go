package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"libris/internal/models"
	apperrors "libris/pkg/errors"
)

// DocumentService exposes the catalog's document endpoints.
type DocumentService struct {
	client *Client
}

// NewDocumentService constructs a DocumentService over the shared client.
func NewDocumentService(client *Client) *DocumentService {
	return &DocumentService{client: client}
}

// ListDocumentsOptions narrows a catalog listing.
type ListDocumentsOptions struct {
	Skip       int
	Limit      int
	CategoryID string
	Search     string
}

// List fetches one page of the catalog.
func (s *DocumentService) List(ctx context.Context, opts ListDocumentsOptions) (*models.DocumentPage, error) {
	query := url.Values{}
	if opts.Skip > 0 {
		query.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.CategoryID != "" {
		if err := requireUUID(opts.CategoryID, "category id"); err != nil {
			return nil, err
		}
		query.Set("category_id", opts.CategoryID)
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}

	var page models.DocumentPage
	if err := s.client.Get(ctx, "/api/documents/list", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single document.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	if err := requireUUID(id, "document id"); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := s.client.Get(ctx, "/api/documents/"+id, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateDocumentRequest registers a new catalog entry with its file metadata.
type CreateDocumentRequest struct {
	Title           string                     `json:"title" validate:"required"`
	Description     string                     `json:"description,omitempty"`
	PublisherID     string                     `json:"publisher_id,omitempty" validate:"omitempty,uuid"`
	PublicationYear int                        `json:"publication_year,omitempty" validate:"omitempty,gte=1400"`
	ISBN            string                     `json:"isbn,omitempty" validate:"omitempty,isbn"`
	CategoryID      string                     `json:"category_id" validate:"required,uuid"`
	Language        string                     `json:"language,omitempty"`
	Version         string                     `json:"version,omitempty"`
	AccessLevel     models.DocumentAccessLevel `json:"access_level,omitempty"`
	FileName        string                     `json:"file_name" validate:"required"`
	FileType        string                     `json:"file_type" validate:"required,uuid"`
	FileSize        int64                      `json:"file_size" validate:"required,gt=0"`
	FileHash        string                     `json:"file_hash" validate:"required"`
}

// Create registers a document.
func (s *DocumentService) Create(ctx context.Context, req CreateDocumentRequest) (*models.Document, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := s.client.Post(ctx, "/api/documents/upload", nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocumentRequest carries a partial document update; nil fields are
// left untouched by the backend.
type UpdateDocumentRequest struct {
	Title           *string                     `json:"title,omitempty"`
	Description     *string                     `json:"description,omitempty"`
	PublisherID     *string                     `json:"publisher_id,omitempty" validate:"omitempty,uuid"`
	PublicationYear *int                        `json:"publication_year,omitempty" validate:"omitempty,gte=1400"`
	ISBN            *string                     `json:"isbn,omitempty" validate:"omitempty,isbn"`
	CategoryID      *string                     `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Language        *string                     `json:"language,omitempty"`
	Version         *string                     `json:"version,omitempty"`
	AccessLevel     *models.DocumentAccessLevel `json:"access_level,omitempty"`
	Status          *models.DocumentStatus      `json:"status,omitempty"`
	IsFeatured      *bool                       `json:"is_featured,omitempty"`
}

// Update applies a partial update to a document.
func (s *DocumentService) Update(ctx context.Context, id string, req UpdateDocumentRequest) (*models.Document, error) {
	if err := requireUUID(id, "document id"); err != nil {
		return nil, err
	}
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := s.client.Put(ctx, "/api/documents/"+id, nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document from the catalog.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := requireUUID(id, "document id"); err != nil {
		return err
	}
	return s.client.Delete(ctx, "/api/documents/"+id, nil)
}

// Summary fetches the generated summary for a document.
func (s *DocumentService) Summary(ctx context.Context, id string) (string, error) {
	if err := requireUUID(id, "document id"); err != nil {
		return "", err
	}

	var payload struct {
		Summary string `json:"summary"`
	}
	if err := s.client.Get(ctx, "/api/documents/"+id+"/summary", nil, &payload); err != nil {
		return "", err
	}
	return payload.Summary, nil
}

// requireUUID rejects malformed identifiers before they reach the backend.
func requireUUID(id, label string) error {
	if uuid.Validate(id) != nil {
		return apperrors.ErrValidationRejected.WithMessage(label + " must be a UUID")
	}
	return nil
}
