package render

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/contentcache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRenderRouter(loader contentcache.Loader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cache := contentcache.New(loader, zap.NewNop(), contentcache.Options{})
	r := gin.New()
	NewHandler(cache, zap.NewNop()).RegisterRoutes(r.Group(""))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPageInjectsRichContentRaw(t *testing.T) {
	r := newRenderRouter(func(ctx context.Context, section string) ([]models.ContentItemModel, error) {
		return []models.ContentItemModel{
			{
				ContentType: "richtext",
				Content:     `<h1 class="hero">Welcome</h1>`,
				Metadata:    map[string]interface{}{"name": "headline"},
			},
			{
				ContentType: "text",
				Content:     "a < b",
				Metadata:    map[string]interface{}{"name": "body"},
			},
		}, nil
	})

	w := get(r, "/render/hero")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `<h1 class="hero">Welcome</h1>`, "rich content passes through unsanitized")
	assert.Contains(t, body, "a &lt; b", "plain text is escaped")
	assert.Contains(t, body, `data-slot="body"`)
}

func TestPageFallsBackOnFetchError(t *testing.T) {
	r := newRenderRouter(func(ctx context.Context, section string) ([]models.ContentItemModel, error) {
		return nil, errors.New("store down")
	})

	w := get(r, "/render/hero")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Content is on its way")
	assert.NotContains(t, w.Body.String(), "store down")
}

func TestPageEmptySectionRendersShell(t *testing.T) {
	r := newRenderRouter(func(ctx context.Context, section string) ([]models.ContentItemModel, error) {
		return []models.ContentItemModel{}, nil
	})

	w := get(r, "/render/nothing")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-section="nothing"`)
}
