package blog

import (
	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/pagination"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	posts := rg.Group("/posts")
	posts.GET("", h.listPosts)
	posts.GET("/:query", h.getPost)
	posts.GET("/:query/render", h.renderPost)

	authedPosts := posts.Group("", adminMW...)
	authedPosts.POST("", h.createPost)
	authedPosts.PUT("/:query", h.updatePost)
	authedPosts.PATCH("/:query", h.updatePost)
	authedPosts.DELETE("/:query", h.deletePost)

	cats := rg.Group("/categories")
	cats.GET("", h.listCategories)

	authedCats := cats.Group("", adminMW...)
	authedCats.POST("", h.createCategory)
	authedCats.DELETE("/:id", h.deleteCategory)
}

func (h *Handler) listPosts(c *gin.Context) {
	q := ListQuery{
		Page:       pagination.FromContext(c),
		CategoryID: c.Query("category"),
		All:        c.Query("all") != "" && middleware.IsAuthenticated(c),
	}
	posts, page, err := h.svc.ListPosts(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, page)
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.svc.GetPost(c.Param("query"), middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "Post not found")
		return
	}
	response.Data(c, post)
}

// renderPost returns the post with its markdown text rendered to HTML.
func (h *Handler) renderPost(c *gin.Context) {
	post, err := h.svc.GetPost(c.Param("query"), middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "Post not found")
		return
	}
	response.OK(c, gin.H{"data": post, "html": RenderMarkdown(post.Text)})
}

func (h *Handler) createPost(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.CreatePost(&dto)
	if err != nil {
		if err.Error() == "slug already exists" {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": post.ID, "data": post})
}

func (h *Handler) updatePost(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.UpdatePost(c.Param("query"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "Post not found")
		return
	}
	response.OK(c, gin.H{"data": post})
}

func (h *Handler) deletePost(c *gin.Context) {
	ok, err := h.svc.DeletePost(c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Post not found")
		return
	}
	response.OK(c, nil)
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.svc.ListCategories()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, cats)
}

func (h *Handler) createCategory(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.CreateCategory(&dto)
	if err != nil {
		if err.Error() == "name or slug already exists" {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": cat.ID, "data": cat})
}

func (h *Handler) deleteCategory(c *gin.Context) {
	ok, err := h.svc.DeleteCategory(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, nil)
}
