package object

import (
	"io"
	"strings"

	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler serves objects out of a private bucket through the API so the
// bucket itself never needs public read access.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/objects/*key", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		response.BadRequest(c, "invalid object key")
		return
	}

	body, contentType, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		response.NotFound(c, "Object not found")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("Content-Type", contentType)
	c.Status(200)
	_, _ = io.Copy(c.Writer, body)
}
