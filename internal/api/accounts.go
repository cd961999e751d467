package api

import (
	"context"
	"net/url"

	"libris/internal/models"
	apperrors "libris/pkg/errors"
	"libris/pkg/validator"
)

// AccountService covers the account operations that run outside an
// authenticated session: registration and password recovery.
type AccountService struct {
	client *Client
}

// NewAccountService constructs an AccountService over the shared client.
func NewAccountService(client *Client) *AccountService {
	return &AccountService{client: client}
}

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3"`
	FullName string `json:"full_name" validate:"required,min=2"`
}

// Register creates a new member account. The backend takes the fields as
// query parameters.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("email", req.Email)
	query.Set("password", req.Password)
	query.Set("username", req.Username)
	query.Set("full_name", req.FullName)

	var user models.User
	if err := s.client.Post(ctx, "/api/auth/register", query, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword asks the backend to email a one-time reset code.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: email}
	if err := validatePayload(payload); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("email", email)
	return s.client.Post(ctx, "/api/users/forgot-password", query, nil, nil)
}

// ResetPasswordRequest redeems an emailed one-time code for a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetPassword completes the password recovery exchange.
func (s *AccountService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := validatePayload(req); err != nil {
		return err
	}
	return s.client.Post(ctx, "/api/users/reset-password", nil, req, nil)
}

// validatePayload runs local validation and maps failures onto the same
// rejection class a backend 422 produces.
func validatePayload(payload any) error {
	if err := validator.ValidateStruct(payload); err != nil {
		return apperrors.ErrValidationRejected.WithMessage(err.Error())
	}
	return nil
}
