package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"libris/internal/models"
	"libris/internal/store"
	apperrors "libris/pkg/errors"
	"libris/pkg/logger"
)

// DefaultTimeout bounds every session exchange when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Config describes tunable behaviour for the Manager.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Clock     func() time.Time
	HTTPDoer  *http.Client
}

// Manager is the only component that reasons about session validity and
// performs the refresh/invalidate transitions. It issues its own HTTP calls
// so refresh traffic can never re-enter the retrying request client.
type Manager struct {
	store *store.Store
	base  string
	ua    string
	http  *http.Client
	now   func() time.Time
	log   *zap.Logger
}

// NewManager constructs a lifecycle manager backed by the provided store.
func NewManager(st *store.Store, cfg Config) (*Manager, error) {
	if st == nil {
		return nil, fmt.Errorf("session manager: store is required")
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("session manager: base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPDoer
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	clock := time.Now
	if cfg.Clock != nil {
		clock = cfg.Clock
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = "libris-client"
	}

	return &Manager{
		store: st,
		base:  base,
		ua:    ua,
		http:  httpClient,
		now:   clock,
		log:   logger.WithModule("session"),
	}, nil
}

// Current returns the stored session, or nil when none exists.
func (m *Manager) Current() (*models.Session, error) {
	return m.store.Session()
}

// IsValid reports whether a stored session exists with its expiry strictly in
// the future. It consults only the store and the clock, never the network.
func (m *Manager) IsValid() bool {
	session, err := m.store.Session()
	if err != nil {
		return false
	}
	return session.Active(m.now())
}

// Login performs the two-step credential exchange: a form-encoded login for
// an access token, then registration of a session record against that token.
// Nothing is persisted unless both steps succeed.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.Session, *models.User, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.base+"/api/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "build login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", m.ua)

	var token struct {
		AccessToken string       `json:"access_token"`
		TokenType   string       `json:"token_type"`
		User        *models.User `json:"user"`
	}
	if err := m.send(req, &token); err != nil {
		return nil, nil, err
	}
	if token.AccessToken == "" || token.User == nil {
		return nil, nil, apperrors.ErrUnreachable.WithMessage("login response missing token or user")
	}

	session, err := m.registerSession(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	if err := m.store.SetSession(session); err != nil {
		return nil, nil, err
	}
	if err := m.store.SetIdentity(token.AccessToken, token.User); err != nil {
		return nil, nil, err
	}

	m.log.Info("session established",
		zap.String("session_id", session.ID),
		zap.Time("expires_at", session.ExpiresAt))

	return session, token.User, nil
}

// Refresh performs the refresh exchange, replacing the stored session in full
// with the record the backend returns. Any failure clears the store: the
// caller receives the refresh failure, and the next state is unauthenticated.
func (m *Manager) Refresh(ctx context.Context) (*models.Session, error) {
	current, err := m.store.Session()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.ErrNoActiveSession
	}

	fresh, err := m.exchange(ctx, current.Token)
	if err != nil {
		m.log.Warn("refresh exchange failed", zap.Error(err))
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Error("clearing store after failed refresh", zap.Error(clearErr))
		}
		return nil, err
	}

	if err := m.store.SetSession(fresh); err != nil {
		return nil, err
	}
	if err := m.store.SetToken(fresh.Token); err != nil {
		return nil, err
	}

	m.log.Info("session refreshed",
		zap.String("session_id", fresh.ID),
		zap.Time("expires_at", fresh.ExpiresAt))

	return fresh, nil
}

// ListActive fetches every session belonging to the authenticated identity.
func (m *Manager) ListActive(ctx context.Context) ([]models.Session, error) {
	current, err := m.requireSession()
	if err != nil {
		return nil, err
	}

	req, err := m.jsonRequest(ctx, http.MethodGet, "/api/sessions/me", current.Token, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Sessions []models.Session `json:"sessions"`
	}
	if err := m.send(req, &payload); err != nil {
		return nil, err
	}
	return payload.Sessions, nil
}

// Delete revokes a session by identifier. Deleting the current session also
// clears the local store; backend rejections are surfaced unchanged.
func (m *Manager) Delete(ctx context.Context, id string) error {
	current, err := m.requireSession()
	if err != nil {
		return err
	}

	if uuid.Validate(id) != nil {
		return apperrors.ErrValidationRejected.WithMessage("session id must be a UUID")
	}

	req, err := m.jsonRequest(ctx, http.MethodDelete, "/api/sessions/"+id, current.Token, nil)
	if err != nil {
		return err
	}
	if err := m.send(req, nil); err != nil {
		return err
	}

	if id == current.ID {
		return m.store.Clear()
	}
	return nil
}

// LogAccess records a user action against a document and returns the
// server-confirmed audit entry. Failures are surfaced, never retried.
func (m *Manager) LogAccess(ctx context.Context, documentID string, action models.AccessLogAction) (*models.AccessLogEntry, error) {
	current, err := m.requireSession()
	if err != nil {
		return nil, err
	}

	if uuid.Validate(documentID) != nil {
		return nil, apperrors.ErrValidationRejected.WithMessage("document id must be a UUID")
	}
	if !action.Valid() {
		return nil, apperrors.ErrValidationRejected.WithMessage(fmt.Sprintf("unknown access action %q", action))
	}

	body := map[string]any{
		"document_id": documentID,
		"action":      action,
		"session_id":  current.ID,
		"user_agent":  m.ua,
	}

	req, err := m.jsonRequest(ctx, http.MethodPost, "/api/sessions/access-logs", current.Token, body)
	if err != nil {
		return nil, err
	}

	var entry models.AccessLogEntry
	if err := m.send(req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AccessLogFilter narrows an access-log listing.
type AccessLogFilter struct {
	DocumentID string
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListAccessLogs fetches the caller's audit trail, optionally filtered by
// document and date range.
func (m *Manager) ListAccessLogs(ctx context.Context, filter AccessLogFilter) ([]models.AccessLogEntry, error) {
	current, err := m.requireSession()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if filter.DocumentID != "" {
		if uuid.Validate(filter.DocumentID) != nil {
			return nil, apperrors.ErrValidationRejected.WithMessage("document id must be a UUID")
		}
		query.Set("document_id", filter.DocumentID)
	}
	if filter.StartDate != nil {
		query.Set("start_date", filter.StartDate.Format(time.RFC3339))
	}
	if filter.EndDate != nil {
		query.Set("end_date", filter.EndDate.Format(time.RFC3339))
	}

	path := "/api/sessions/access-logs"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := m.jsonRequest(ctx, http.MethodGet, path, current.Token, nil)
	if err != nil {
		return nil, err
	}

	var entries []models.AccessLogEntry
	if err := m.send(req, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Logout revokes the current server-side session on a best-effort basis and
// always clears the local store.
func (m *Manager) Logout(ctx context.Context) error {
	current, err := m.store.Session()
	if err != nil {
		return err
	}

	if current != nil {
		req, reqErr := m.jsonRequest(ctx, http.MethodDelete, "/api/sessions/"+current.ID, current.Token, nil)
		if reqErr == nil {
			if sendErr := m.send(req, nil); sendErr != nil {
				m.log.Debug("server-side session revocation failed", zap.Error(sendErr))
			}
		}
	}

	return m.store.Clear()
}

func (m *Manager) requireSession() (*models.Session, error) {
	session, err := m.store.Session()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.ErrNoActiveSession
	}
	return session, nil
}

// registerSession posts a session record for a freshly issued access token.
func (m *Manager) registerSession(ctx context.Context, accessToken string) (*models.Session, error) {
	body := map[string]any{
		"token":      accessToken,
		"user_agent": m.ua,
	}

	req, err := m.jsonRequest(ctx, http.MethodPost, "/api/sessions/", accessToken, body)
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := m.send(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// exchange trades the current token for a brand-new session record. Every
// failure is classified as a refresh rejection so callers never observe the
// upstream 401 that triggered it.
func (m *Manager) exchange(ctx context.Context, token string) (*models.Session, error) {
	body := map[string]any{
		"token":      token,
		"user_agent": m.ua,
	}

	req, err := m.jsonRequest(ctx, http.MethodPost, "/api/sessions/", token, body)
	if err != nil {
		return nil, apperrors.ErrRefreshRejected.WithInternal(err)
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrRefreshRejected.WithInternal(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrRefreshRejected.WithInternal(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.ErrRefreshRejected.WithMessage(apperrors.DetailFromBody(payload))
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, apperrors.ErrRefreshRejected.WithInternal(err)
	}
	return &session, nil
}

func (m *Manager) jsonRequest(ctx context.Context, method, path, bearer string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.base+path, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, "build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("User-Agent", m.ua)

	return req, nil
}

// send executes the request, mapping non-2xx responses onto the error
// taxonomy and decoding successful bodies into out when provided.
func (m *Manager) send(req *http.Request, out any) error {
	resp, err := m.http.Do(req)
	if err != nil {
		return apperrors.ErrUnreachable.WithInternal(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.ErrUnreachable.WithInternal(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.FromHTTP(resp.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Wrap(err, "decode response body")
	}
	return nil
}
