package models

import "time"

// ResourceStatus is the shared active/inactive flag used by the catalog
// reference entities (authors, categories, tags, publishers).
type ResourceStatus string

const (
	StatusActive   ResourceStatus = "active"
	StatusInactive ResourceStatus = "inactive"
)

// Author describes a document author.
type Author struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	Email       string         `json:"email,omitempty"`
	Website     string         `json:"website,omitempty"`
	BirthDate   string         `json:"birth_date,omitempty"`
	DeathDate   string         `json:"death_date,omitempty"`
	Nationality string         `json:"nationality,omitempty"`
	Status      ResourceStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// Category is a catalog category. Children are populated only on detail
// responses; list responses return the flat form.
type Category struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	ParentID    string         `json:"parent_id,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Status      ResourceStatus `json:"status"`
	Children    []Category     `json:"children,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// Tag is a free-form catalog label.
type Tag struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug,omitempty"`
	Description string         `json:"description,omitempty"`
	Status      ResourceStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// Publisher describes a publishing house.
type Publisher struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Website     string         `json:"website,omitempty"`
	Email       string         `json:"email,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Address     string         `json:"address,omitempty"`
	Status      ResourceStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// Language is a supported document language.
type Language struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
