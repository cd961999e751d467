package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"libris/internal/models"
	apperrors "libris/pkg/errors"
)

func TestCategoryListAndDetail(t *testing.T) {
	parentID := uuid.NewString()
	childID := uuid.NewString()

	backend := newBackend(t, func(r *gin.Engine) {
		r.GET("/api/categories", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"id": parentID, "name": "Fiction", "slug": "fiction", "status": "active"},
				{"id": childID, "name": "Science Fiction", "slug": "science-fiction", "parent_id": parentID, "status": "active"},
			})
		})
		r.GET("/api/categories/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"id": parentID, "name": "Fiction", "slug": "fiction", "status": "active",
				"children": []gin.H{{"id": childID, "name": "Science Fiction", "slug": "science-fiction", "status": "active"}},
			})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "tok")
	categories := NewCategoryService(newTestClient(t, st, &stubRefresher{store: st}, backend.URL))

	flat, err := categories.List(context.Background())
	require.NoError(t, err)
	require.Len(t, flat, 2)
	require.Empty(t, flat[0].Children, "list responses are flat")

	detail, err := categories.Get(context.Background(), parentID)
	require.NoError(t, err)
	require.Len(t, detail.Children, 1)
	require.Equal(t, "Science Fiction", detail.Children[0].Name)
}

func TestCategoryCreateRejectsBadSlug(t *testing.T) {
	st := newTestStore(t)
	categories := NewCategoryService(newTestClient(t, st, &stubRefresher{store: st}, "http://backend.invalid"))

	_, err := categories.Create(context.Background(), CategoryRequest{
		Name: "Science Fiction",
		Slug: "Science Fiction",
	})
	require.ErrorIs(t, err, apperrors.ErrValidationRejected)
	require.ErrorContains(t, err, "slug")
}

func TestTagCRUD(t *testing.T) {
	tagID := uuid.NewString()
	var deleted string

	backend := newBackend(t, func(r *gin.Engine) {
		r.POST("/api/tags", func(c *gin.Context) {
			var body TagRequest
			require.NoError(t, c.ShouldBindJSON(&body))
			c.JSON(http.StatusOK, gin.H{"id": tagID, "name": body.Name, "status": "active"})
		})
		r.PUT("/api/tags/:id", func(c *gin.Context) {
			var body TagRequest
			require.NoError(t, c.ShouldBindJSON(&body))
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "name": body.Name, "status": "inactive"})
		})
		r.DELETE("/api/tags/:id", func(c *gin.Context) {
			deleted = c.Param("id")
			c.Status(http.StatusNoContent)
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "tok")
	tags := NewTagService(newTestClient(t, st, &stubRefresher{store: st}, backend.URL))

	created, err := tags.Create(context.Background(), TagRequest{Name: "utopia"})
	require.NoError(t, err)
	require.Equal(t, tagID, created.ID)
	require.Equal(t, models.StatusActive, created.Status)

	updated, err := tags.Update(context.Background(), tagID, TagRequest{Name: "utopian"})
	require.NoError(t, err)
	require.Equal(t, models.StatusInactive, updated.Status)

	require.NoError(t, tags.Delete(context.Background(), tagID))
	require.Equal(t, tagID, deleted)
}

func TestPublisherPhoneValidation(t *testing.T) {
	st := newTestStore(t)
	publishers := NewPublisherService(newTestClient(t, st, &stubRefresher{store: st}, "http://backend.invalid"))

	_, err := publishers.Create(context.Background(), PublisherRequest{
		Name:  "Harper & Row",
		Phone: "not-a-phone",
	})
	require.ErrorIs(t, err, apperrors.ErrValidationRejected)
	require.ErrorContains(t, err, "phone")
}

func TestLanguageList(t *testing.T) {
	backend := newBackend(t, func(r *gin.Engine) {
		r.GET("/api/languages", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"id": uuid.NewString(), "code": "en", "name": "English"},
				{"id": uuid.NewString(), "code": "vi", "name": "Vietnamese"},
			})
		})
	})

	st := newTestStore(t)
	seedSession(t, st, "tok")
	languages := NewLanguageService(newTestClient(t, st, &stubRefresher{store: st}, backend.URL))

	list, err := languages.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "en", list[0].Code)
}
