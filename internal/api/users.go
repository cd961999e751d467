package api

import (
	"context"
	"net/url"
	"strconv"

	"libris/internal/models"
)

// UserService exposes profile access and the admin user listing.
type UserService struct {
	client *Client
}

// NewUserService constructs a UserService over the shared client.
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// Profile fetches the authenticated account's profile.
func (s *UserService) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.Get(ctx, "/api/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,e164"`
	Address     string `json:"address,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UpdateProfile updates the authenticated account's profile.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.client.Put(ctx, "/api/users/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserPage is the paginated envelope for the admin user listing.
type UserPage struct {
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
	Users []models.User `json:"users"`
}

// List fetches one page of accounts. Admin only; the backend enforces the
// role.
func (s *UserService) List(ctx context.Context, skip, limit int) (*UserPage, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var page UserPage
	if err := s.client.Get(ctx, "/api/users", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
