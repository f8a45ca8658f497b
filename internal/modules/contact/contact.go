package contact

import (
	"errors"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/settings"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/mail"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/pagination"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Submit(dto SubmitDTO) (*models.ContactSubmissionModel, error) {
	sub := models.ContactSubmissionModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Subject: dto.Subject,
		Message: dto.Message,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Service) Get(id string) (*models.ContactSubmissionModel, error) {
	var sub models.ContactSubmissionModel
	err := s.db.Where("id = ?", id).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Service) List(q pagination.Query, unreadOnly bool) ([]models.ContactSubmissionModel, response.Pagination, error) {
	query := s.db.Model(&models.ContactSubmissionModel{})
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	query = query.Order("created_at DESC")

	var subs []models.ContactSubmissionModel
	page, err := pagination.Paginate(query, q, &subs)
	return subs, page, err
}

func (s *Service) MarkRead(id string, read bool) (bool, error) {
	result := s.db.Model(&models.ContactSubmissionModel{}).
		Where("id = ?", id).
		Update("is_read", read)
	return result.RowsAffected > 0, result.Error
}

func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.ContactSubmissionModel{})
	return result.RowsAffected > 0, result.Error
}

type Handler struct {
	svc    *Service
	sender *mail.Sender
	cfgSvc *settings.Service
}

func NewHandler(svc *Service, sender *mail.Sender, cfgSvc *settings.Service) *Handler {
	return &Handler{svc: svc, sender: sender, cfgSvc: cfgSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	group := rg.Group("/contact")
	group.POST("", h.submit)

	authed := group.Group("", adminMW...)
	authed.GET("/submissions", h.list)
	authed.GET("/submissions/:id", h.get)
	authed.PATCH("/submissions/:id/read", h.markRead)
	authed.DELETE("/submissions/:id", h.remove)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, err := h.svc.Submit(dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	h.notify(sub)
	response.OK(c, gin.H{"id": sub.ID})
}

// notify emails the configured recipients. The submission is already
// stored, so delivery problems are logged and swallowed.
func (h *Handler) notify(sub *models.ContactSubmissionModel) {
	recipients := h.cfgSvc.Recipients(settings.NotifyContactForm)
	if len(recipients) == 0 {
		return
	}
	html, err := mail.RenderContactNotify(mail.ContactNotifyData{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Subject: sub.Subject,
		Message: sub.Message,
	})
	if err != nil {
		return
	}
	h.sender.SendAsync(mail.Message{
		To:      recipients,
		Subject: "New contact form submission",
		HTML:    html,
	})
}

func (h *Handler) list(c *gin.Context) {
	subs, page, err := h.svc.List(pagination.FromContext(c), c.Query("unread") != "")
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, subs, page)
}

func (h *Handler) get(c *gin.Context) {
	sub, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFound(c, "Submission not found")
		return
	}
	response.Data(c, sub)
}

func (h *Handler) markRead(c *gin.Context) {
	var body struct {
		Read *bool `json:"read"`
	}
	read := true
	if err := c.ShouldBindJSON(&body); err == nil && body.Read != nil {
		read = *body.Read
	}

	ok, err := h.svc.MarkRead(c.Param("id"), read)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Submission not found")
		return
	}
	response.OK(c, gin.H{"read": read})
}

func (h *Handler) remove(c *gin.Context) {
	ok, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Submission not found")
		return
	}
	response.OK(c, nil)
}
