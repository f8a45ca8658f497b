package content

import (
	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/contentcache"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc   *Service
	cache *contentcache.Cache
}

func NewHandler(svc *Service, cache *contentcache.Cache) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	items := rg.Group("/content")
	items.GET("", h.get)

	authed := items.Group("", adminMW...)
	authed.POST("", h.create)
	authed.PUT("", h.update)
	authed.PATCH("", h.update)
	authed.DELETE("", h.delete)
	authed.POST("/reorder", h.reorder)
}

// get serves both lookup styles: ?id=X for a single item, ?section=S
// (+ optional &subsection=T) for the ordered active list. Public section
// reads go through the cache; admin calls with all=1 see inactive rows.
func (h *Handler) get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		item, err := h.svc.FetchByID(id)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		if item == nil {
			response.NotFound(c, "Content not found")
			return
		}
		response.Data(c, item)
		return
	}

	section := c.Query("section")
	if section == "" {
		response.BadRequest(c, "section or id is required")
		return
	}
	subsection := c.Query("subsection")

	if c.Query("all") != "" && middleware.IsAuthenticated(c) {
		items, err := h.svc.FetchSectionAll(section, subsection)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.Data(c, items)
		return
	}

	// The whole-section cache only keys by section; a subsection filter
	// bypasses it, which is fine since templates fetch whole sections.
	if subsection == "" {
		items, err := h.cache.Get(c.Request.Context(), section)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.Data(c, items)
		return
	}

	items, err := h.svc.FetchSection(section, subsection)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, items)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), item.Section)
	response.OK(c, gin.H{"id": item.ID, "data": item})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, "id is required")
		return
	}
	var dto UpdateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	before, err := h.svc.FetchByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if before == nil {
		response.NotFound(c, "Content not found")
		return
	}
	item, err := h.svc.Update(id, &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), before.Section)
	if item.Section != before.Section {
		h.cache.Invalidate(c.Request.Context(), item.Section)
	}
	response.OK(c, gin.H{"data": item})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, "id is required")
		return
	}
	item, err := h.svc.FetchByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c, "Content not found")
		return
	}
	if _, err := h.svc.Delete(id); err != nil {
		response.InternalError(c, err)
		return
	}
	h.cache.Invalidate(c.Request.Context(), item.Section)
	response.OK(c, nil)
}

func (h *Handler) reorder(c *gin.Context) {
	var pairs []ReorderPair
	if err := c.ShouldBindJSON(&pairs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Reorder(pairs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	// Orders may span sections; drop everything touched.
	seen := map[string]bool{}
	for _, p := range pairs {
		item, err := h.svc.FetchByID(p.ID)
		if err != nil || item == nil {
			continue
		}
		if !seen[item.Section] {
			seen[item.Section] = true
			h.cache.Invalidate(c.Request.Context(), item.Section)
		}
	}
	response.OK(c, nil)
}
