package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"libris/internal/database/testutil"
	"libris/internal/models"
	"libris/internal/session"
	"libris/internal/store"
	apperrors "libris/pkg/errors"
)

type stubRefresher struct {
	store *store.Store
	calls int
	fail  error
}

func (r *stubRefresher) Refresh(ctx context.Context) (*models.Session, error) {
	r.calls++

	if r.fail != nil {
		_ = r.store.Clear()
		return nil, r.fail
	}

	fresh := &models.Session{
		ID:        uuid.NewString(),
		Token:     "fresh-token",
		UserAgent: "libris-test",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := r.store.SetSession(fresh); err != nil {
		return nil, err
	}
	if err := r.store.SetToken(fresh.Token); err != nil {
		return nil, err
	}
	return fresh, nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(testutil.MustOpenTestDB(t))
	require.NoError(t, err)
	return s
}

func seedSession(t *testing.T, st *store.Store, token string) *models.Session {
	t.Helper()

	sess := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserAgent: "libris-test",
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, st.SetSession(sess))
	require.NoError(t, st.SetToken(token))
	return sess
}

func newBackend(t *testing.T, register func(r *gin.Engine)) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, st *store.Store, refresher Refresher, baseURL string) *Client {
	t.Helper()

	client, err := NewClient(st, refresher, Config{
		BaseURL:   baseURL,
		UserAgent: "libris-test",
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestUnauthorizedOnceTriggersExactlyOneRefreshAndResend(t *testing.T) {
	var attempts int

	backend := newBackend(t, func(r *gin.Engine) {
		r.GET("/api/documents/list", func(c *gin.Context) {
			attempts++
			if c.GetHeader("Authorization") != "Bearer fresh-token" {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"total": 0, "skip": 0, "limit": 10, "documents": []gin.H{}})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "stale-token")
	refresher := &stubRefresher{store: st}
	client := newTestClient(t, st, refresher, backend.URL)

	var page models.DocumentPage
	err := client.Get(context.Background(), "/api/documents/list", nil, &page)
	require.NoError(t, err, "caller must see only the final successful response")

	require.Equal(t, 1, refresher.calls, "exactly one refresh call")
	require.Equal(t, 2, attempts, "original send plus exactly one resend")
}

func TestSecondUnauthorizedIsPropagatedWithoutAnotherRefresh(t *testing.T) {
	var attempts int

	backend := newBackend(t, func(r *gin.Engine) {
		r.GET("/api/documents/list", func(c *gin.Context) {
			attempts++
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "still unauthorized"})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "stale-token")
	refresher := &stubRefresher{store: st}
	client := newTestClient(t, st, refresher, backend.URL)

	err := client.Get(context.Background(), "/api/documents/list", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.ErrorContains(t, err, "still unauthorized")

	require.Equal(t, 1, refresher.calls, "no second refresh attempt")
	require.Equal(t, 2, attempts, "no second resend")
}

func TestRefreshFailurePropagatesRefreshErrorNotTheStale401(t *testing.T) {
	var attempts int

	backend := newBackend(t, func(r *gin.Engine) {
		r.GET("/api/documents/list", func(c *gin.Context) {
			attempts++
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "stale-token")
	refresher := &stubRefresher{store: st, fail: apperrors.ErrRefreshRejected.WithMessage("token expired")}
	client := newTestClient(t, st, refresher, backend.URL)

	err := client.Get(context.Background(), "/api/documents/list", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrRefreshRejected)
	require.ErrorContains(t, err, "token expired")
	require.NotContains(t, err.Error(), "Could not validate credentials")

	require.Equal(t, 1, attempts, "failed refresh forbids a resend")

	stored, storeErr := st.Session()
	require.NoError(t, storeErr)
	require.Nil(t, stored, "local credentials are cleared after a failed refresh")
}

func TestUnauthenticatedRequestPropagates401Untouched(t *testing.T) {
	backend := newBackend(t, func(r *gin.Engine) {
		r.GET("/api/sessions/me", func(c *gin.Context) {
			require.Empty(t, c.GetHeader("Authorization"), "no credential may be invented")
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		})
	})

	st := newTestStore(t)
	refresher := &stubRefresher{store: st}
	client := newTestClient(t, st, refresher, backend.URL)

	err := client.Get(context.Background(), "/api/sessions/me", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.ErrorContains(t, err, "Not authenticated")
	require.Zero(t, refresher.calls, "nothing to refresh without a session")
}

func TestNonAuthFailuresPassThroughUnchanged(t *testing.T) {
	backend := newBackend(t, func(r *gin.Engine) {
		r.GET("/api/documents/:id", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "tok")
	refresher := &stubRefresher{store: st}
	client := newTestClient(t, st, refresher, backend.URL)

	err := client.Get(context.Background(), "/api/documents/"+uuid.NewString(), nil, nil)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorContains(t, err, "Document not found")
	require.Zero(t, refresher.calls)
}

func TestResendReplaysIdenticalBody(t *testing.T) {
	var bodies []string

	backend := newBackend(t, func(r *gin.Engine) {
		r.POST("/api/tags", func(c *gin.Context) {
			raw, err := c.GetRawData()
			require.NoError(t, err)
			bodies = append(bodies, string(raw))

			if c.GetHeader("Authorization") != "Bearer fresh-token" {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "expired"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"id": uuid.NewString(), "name": "sci-fi", "status": "active"})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "stale-token")
	refresher := &stubRefresher{store: st}
	client := newTestClient(t, st, refresher, backend.URL)

	var tag models.Tag
	err := client.Post(context.Background(), "/api/tags", nil, map[string]string{"name": "sci-fi"}, &tag)
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	require.Equal(t, bodies[0], bodies[1], "the resend must replay the exact original request")
}

func TestTransportFailureSurfacesAsUnreachable(t *testing.T) {
	st := newTestStore(t)
	refresher := &stubRefresher{store: st}
	client := newTestClient(t, st, refresher, "http://127.0.0.1:1")

	err := client.Get(context.Background(), "/api/languages", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrUnreachable)
	require.Zero(t, refresher.calls, "transport failures are not auth failures")
}

// End-to-end: the real lifecycle manager performs the refresh exchange while
// the client retries, and the caller observes only the final 200.
func TestClientWithRealManagerRecoversFromExpiredToken(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	var refreshes, listAttempts int

	backend := newBackend(t, func(r *gin.Engine) {
		r.POST("/api/sessions/", func(c *gin.Context) {
			refreshes++
			c.JSON(http.StatusOK, gin.H{
				"id":         uuid.NewString(),
				"token":      "rotated-token",
				"user_agent": "libris-test",
				"created_at": now,
				"expires_at": now.Add(24 * time.Hour),
			})
		})
		r.GET("/api/documents/list", func(c *gin.Context) {
			listAttempts++
			if !strings.HasSuffix(c.GetHeader("Authorization"), "rotated-token") {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "token expired"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"total": 1, "skip": 0, "limit": 10,
				"documents": []gin.H{{"id": uuid.NewString(), "title": "The Dispossessed"}},
			})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "expired-token")

	manager, err := session.NewManager(st, session.Config{
		BaseURL:   backend.URL,
		UserAgent: "libris-test",
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)

	client := newTestClient(t, st, manager, backend.URL)

	var page models.DocumentPage
	require.NoError(t, client.Get(context.Background(), "/api/documents/list", nil, &page))
	require.Equal(t, 1, page.Total)
	require.Equal(t, "The Dispossessed", page.Documents[0].Title)

	require.Equal(t, 1, refreshes)
	require.Equal(t, 2, listAttempts)

	stored, storeErr := st.Session()
	require.NoError(t, storeErr)
	require.Equal(t, "rotated-token", stored.Token)
}
