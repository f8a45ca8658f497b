package gallery

import (
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// uploads are capped well below gin's default multipart memory limit
const maxUploadBytes = 20 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	group := rg.Group("/gallery")
	group.GET("/albums", h.listAlbums)
	group.GET("/images", h.listImages)
	group.GET("/images/:id", h.getImage)

	authed := group.Group("", adminMW...)
	authed.POST("/images", h.createImage)
	authed.PATCH("/images/:id", h.updateImage)
	authed.DELETE("/images/:id", h.deleteImage)
	authed.POST("/images/reorder", h.reorder)
}

func (h *Handler) listAlbums(c *gin.Context) {
	albums, err := h.svc.ListAlbums()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, albums)
}

func (h *Handler) listImages(c *gin.Context) {
	includeHidden := c.Query("all") != "" && middleware.IsAuthenticated(c)
	images, err := h.svc.ListImages(c.Query("album"), includeHidden)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, images)
}

func (h *Handler) getImage(c *gin.Context) {
	img, err := h.svc.GetImage(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if img == nil {
		response.NotFound(c, "Image not found")
		return
	}
	response.Data(c, img)
}

// createImage accepts either a JSON body (external URL) or a multipart
// form with a "file" part plus a "payload" JSON field.
func (h *Handler) createImage(c *gin.Context) {
	var dto CreateImageDTO
	var file []byte
	var filename, contentType string

	if c.ContentType() == "multipart/form-data" {
		payload := c.PostForm("payload")
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &dto); err != nil {
				response.BadRequest(c, "invalid payload field")
				return
			}
		}
		if dto.Album == "" {
			dto.Album = c.PostForm("album")
		}
		if dto.Album == "" {
			response.BadRequest(c, "album is required")
			return
		}

		fh, err := c.FormFile("file")
		if err != nil {
			response.BadRequest(c, "file is required")
			return
		}
		if fh.Size > maxUploadBytes {
			response.BadRequest(c, "file too large")
			return
		}
		file, err = readAll(fh)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		filename = fh.Filename
		contentType = fh.Header.Get("Content-Type")
	} else {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	img, err := h.svc.CreateImage(c.Request.Context(), dto, file, filename, contentType)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, img)
}

func (h *Handler) updateImage(c *gin.Context) {
	var dto UpdateImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	existing, err := h.svc.GetImage(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if existing == nil {
		response.NotFound(c, "Image not found")
		return
	}

	img, err := h.svc.UpdateImage(c.Param("id"), dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, img)
}

func (h *Handler) deleteImage(c *gin.Context) {
	ok, err := h.svc.DeleteImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Image not found")
		return
	}
	response.OK(c, nil)
}

func (h *Handler) reorder(c *gin.Context) {
	var pairs []ReorderPair
	if err := c.ShouldBindJSON(&pairs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if len(pairs) == 0 {
		response.BadRequest(c, "no items to reorder")
		return
	}
	if err := h.svc.Reorder(pairs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, nil)
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}
