package api

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

	"go.uber.org/zap"

	"libris/internal/models"
	"libris/internal/store"
	apperrors "libris/pkg/errors"
	"libris/pkg/logger"
)

// DefaultTimeout bounds each outgoing call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Refresher is the slice of the session lifecycle manager the client needs:
// one refresh exchange that replaces the stored session or clears it.
type Refresher interface {
	Refresh(ctx context.Context) (*models.Session, error)
}

// Config describes tunable behaviour for the Client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	HTTPDoer  *http.Client
}

// Client is the single chokepoint for backend calls that need credentials.
// It attaches the stored bearer token before sending and coordinates at most
// one refresh-and-resend per logical request after an unauthorized response.
type Client struct {
	base      string
	ua        string
	http      *http.Client
	store     *store.Store
	refresher Refresher
	log       *zap.Logger
}

// NewClient constructs an authenticated request client over the shared store.
func NewClient(st *store.Store, refresher Refresher, cfg Config) (*Client, error) {
	if st == nil {
		return nil, fmt.Errorf("api client: store is required")
	}
	if refresher == nil {
		return nil, fmt.Errorf("api client: refresher is required")
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api client: base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPDoer
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = "libris-client"
	}

	return &Client{
		base:      base,
		ua:        ua,
		http:      httpClient,
		store:     st,
		refresher: refresher,
		log:       logger.WithModule("api"),
	}, nil
}

// Get issues an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do runs the linear request pipeline: attach credential, send, and on the
// first unauthorized response refresh once and resend the identical bytes.
// Retry state lives in a local variable so no other request can contaminate
// it, and a second unauthorized response is propagated as-is.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, "encode request body")
		}
		payload = encoded
	}

	retried := false
	for {
		status, respBody, err := c.send(ctx, method, path, query, payload)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized && !retried {
			retried = true

			// An unauthenticated request was sent without a credential in the
			// first place; there is nothing to refresh, so the backend's
			// rejection stands.
			session, storeErr := c.store.Session()
			if storeErr != nil {
				return storeErr
			}
			if session == nil {
				return apperrors.FromHTTP(status, respBody)
			}

			c.log.Debug("unauthorized response, refreshing session",
				zap.String("method", method), zap.String("path", path))

			if _, refreshErr := c.refresher.Refresh(ctx); refreshErr != nil {
				// The store is already cleared; the caller sees the refresh
				// failure, never the stale 401.
				return refreshErr
			}
			continue
		}

		if status < 200 || status >= 300 {
			return apperrors.FromHTTP(status, respBody)
		}

		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperrors.Wrap(err, "decode response body")
		}
		return nil
	}
}

// send performs one attempt, re-reading the stored token immediately before
// attaching it so a refresh completed in the meantime is always picked up.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	target := c.base + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, "build request")
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.ua)

	if token, ok := c.currentToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, apperrors.ErrUnreachable.WithInternal(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apperrors.ErrUnreachable.WithInternal(err)
	}

	return resp.StatusCode, respBody, nil
}

// currentToken prefers the session record's token and falls back to the
// denormalized token slot. Absence of both is not an error at this layer:
// the request simply goes out without a credential.
func (c *Client) currentToken() (string, bool) {
	session, err := c.store.Session()
	if err == nil && session != nil && session.Token != "" {
		return session.Token, true
	}

	token, ok, err := c.store.Token()
	if err != nil || !ok || token == "" {
		return "", false
	}
	return token, true
}
