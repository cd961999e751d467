package models

import "time"

// DocumentStatus tracks where a document sits in the publication workflow.
type DocumentStatus string

const (
	DocumentAvailable   DocumentStatus = "available"
	DocumentRestricted  DocumentStatus = "restricted"
	DocumentMaintenance DocumentStatus = "maintenance"
	DocumentPending     DocumentStatus = "pending"
	DocumentApproved    DocumentStatus = "approved"
	DocumentRejected    DocumentStatus = "rejected"
)

// DocumentAccessLevel controls who may open a document.
type DocumentAccessLevel string

const (
	AccessPublic     DocumentAccessLevel = "public"
	AccessRestricted DocumentAccessLevel = "restricted"
	AccessPrivate    DocumentAccessLevel = "private"
)

// Document is a catalog entry as served by the backend.
type Document struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	PublisherID     string              `json:"publisher_id,omitempty"`
	PublicationYear int                 `json:"publication_year,omitempty"`
	ISBN            string              `json:"isbn,omitempty"`
	CategoryID      string              `json:"category_id"`
	Language        string              `json:"language"`
	Version         string              `json:"version"`
	AccessLevel     DocumentAccessLevel `json:"access_level"`
	FileName        string              `json:"file_name"`
	FileType        string              `json:"file_type"`
	FileSize        int64               `json:"file_size"`
	FileHash        string              `json:"file_hash"`
	Status          DocumentStatus      `json:"status"`
	DownloadCount   int                 `json:"download_count"`
	ViewCount       int                 `json:"view_count"`
	IsFeatured      bool                `json:"is_featured"`
	Summary         string              `json:"ai_summary,omitempty"`
	AddedBy         string              `json:"added_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// DocumentPage is the paginated list envelope for catalog queries.
type DocumentPage struct {
	Total     int        `json:"total"`
	Skip      int        `json:"skip"`
	Limit     int        `json:"limit"`
	Documents []Document `json:"documents"`
}
