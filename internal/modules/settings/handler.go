package settings

import (
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the admin-only email settings surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	group := rg.Group("/email-settings", adminMW...)
	group.GET("", h.list)
	group.PUT("", h.set)
	group.POST("", h.set)
	group.DELETE("/:name", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	rows, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, rows)
}

type setDTO struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

func (h *Handler) set(c *gin.Context) {
	var dto setDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Set(dto.Name, dto.Value); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c.Param("name"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Setting not found")
		return
	}
	response.OK(c, nil)
}
