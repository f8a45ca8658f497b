package staff

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateDTO struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role"`
	Bio   string `json:"bio"`
	Photo string `json:"photo"`
	Email string `json:"email"`
	Order *int   `json:"order"`
}

type UpdateDTO struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Bio      *string `json:"bio"`
	Photo    *string `json:"photo"`
	Email    *string `json:"email"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

type ReorderPair struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(includeHidden bool) ([]models.StaffMemberModel, error) {
	query := s.db.Model(&models.StaffMemberModel{})
	if !includeHidden {
		query = query.Where("is_active = ?", true)
	}

	var members []models.StaffMemberModel
	if err := query.Order("order_num ASC, created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.StaffMemberModel{}
	}
	return members, nil
}

func (s *Service) Get(id string) (*models.StaffMemberModel, error) {
	var member models.StaffMemberModel
	err := s.db.Where("id = ?", id).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Service) Create(dto CreateDTO) (*models.StaffMemberModel, error) {
	member := models.StaffMemberModel{
		Name:     dto.Name,
		Role:     dto.Role,
		Bio:      dto.Bio,
		Photo:    dto.Photo,
		Email:    dto.Email,
		IsActive: true,
	}

	if dto.Order != nil {
		member.OrderNum = *dto.Order
	} else {
		var max sql.NullInt64
		s.db.Model(&models.StaffMemberModel{}).Select("MAX(order_num)").Scan(&max)
		if max.Valid {
			member.OrderNum = int(max.Int64) + 1
		}
	}

	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Service) Update(id string, dto UpdateDTO) (*models.StaffMemberModel, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Role != nil {
		updates["role"] = *dto.Role
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
	}
	if dto.Photo != nil {
		updates["photo"] = *dto.Photo
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Order != nil {
		updates["order_num"] = *dto.Order
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if err := s.db.Model(&models.StaffMemberModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.StaffMemberModel{})
	return result.RowsAffected > 0, result.Error
}

func (s *Service) Reorder(pairs []ReorderPair) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range pairs {
			result := tx.Model(&models.StaffMemberModel{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{"order_num": p.Order, "updated_at": time.Now()})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("staff: member %s not found", p.ID)
			}
		}
		return nil
	})
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	group := rg.Group("/staff")
	group.GET("", h.list)
	group.GET("/:id", h.get)

	authed := group.Group("", adminMW...)
	authed.POST("", h.create)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.remove)
	authed.POST("/reorder", h.reorder)
}

func (h *Handler) list(c *gin.Context) {
	includeHidden := c.Query("all") != "" && middleware.IsAuthenticated(c)
	members, err := h.svc.List(includeHidden)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, members)
}

func (h *Handler) get(c *gin.Context) {
	member, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if member == nil {
		response.NotFound(c, "Staff member not found")
		return
	}
	response.Data(c, member)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	member, err := h.svc.Create(dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, member)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	existing, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if existing == nil {
		response.NotFound(c, "Staff member not found")
		return
	}

	member, err := h.svc.Update(c.Param("id"), dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, member)
}

func (h *Handler) remove(c *gin.Context) {
	ok, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Staff member not found")
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
