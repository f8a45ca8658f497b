package content

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/contentcache"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := newTestService(t)
	cache := contentcache.New(func(ctx context.Context, section string) ([]models.ContentItemModel, error) {
		return svc.FetchSection(section, "")
	}, zap.NewNop(), contentcache.Options{TTL: time.Minute})

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth())
	NewHandler(svc, cache).RegisterRoutes(api, middleware.Auth(), middleware.RequireAdmin())
	return r, svc
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Sign("test-admin", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateThenListSection(t *testing.T) {
	r, _ := newTestRouter(t)
	token := adminToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/content", token, gin.H{
		"section":     "hero",
		"contentType": "richtext",
		"metadata":    gin.H{"name": "headline"},
		"content":     "<h1>Welcome</h1>",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	require.NotEmpty(t, created.ID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/content?section=hero", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Success bool                      `json:"success"`
		Data    []models.ContentItemModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, created.ID, listed.Data[0].ID)
	assert.Equal(t, "<h1>Welcome</h1>", listed.Data[0].Content)
}

func TestDeleteUnknownIDReturns404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/content?id=unknown-id", adminToken(t), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Content not found", body.Error)
}

func TestSoftHideRemovesFromSectionButNotByID(t *testing.T) {
	r, svc := newTestRouter(t)
	token := adminToken(t)

	created, err := svc.Create(&CreateContentDTO{Section: "about", Content: "visible"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPut, "/api/v1/content?id="+created.ID, token, gin.H{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/content?section=about", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data []models.ContentItemModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Data)

	w = doJSON(t, r, http.MethodGet, "/api/v1/content?id="+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var single struct {
		Data models.ContentItemModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &single))
	assert.False(t, single.Data.IsActive)
}

func TestWritesRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/content", "", gin.H{"section": "hero"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	editorToken, err := jwt.Sign("someone", models.RoleEditor, time.Hour)
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodPost, "/api/v1/content", editorToken, gin.H{"section": "hero"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMissingSectionAndIDIsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/content", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminWriteInvalidatesCachedSection(t *testing.T) {
	r, _ := newTestRouter(t)
	token := adminToken(t)

	// Prime the cache with the empty section.
	w := doJSON(t, r, http.MethodGet, "/api/v1/content?section=hero", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/content", token, gin.H{
		"section": "hero",
		"content": "fresh",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/content?section=hero", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data []models.ContentItemModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1, "write must invalidate the cached section")
}
