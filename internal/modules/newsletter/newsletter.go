package newsletter

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/settings"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/mail"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/pagination"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubscribeDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Subscribe records a signup. An email that is already subscribed and
// active is a success no-op; an inactive row is reactivated in place.
// Never creates a duplicate row for the same email.
func (s *Service) Subscribe(email string) (*models.NewsletterSubscriberModel, bool, error) {
	var existing models.NewsletterSubscriberModel
	err := s.db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.IsActive {
			return &existing, false, nil
		}
		if err := s.db.Model(&existing).Update("is_active", true).Error; err != nil {
			return nil, false, err
		}
		existing.IsActive = true
		return &existing, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return nil, false, err
	}

	token := make([]byte, 16)
	if _, err := rand.Read(token); err != nil {
		return nil, false, err
	}
	sub := models.NewsletterSubscriberModel{
		Email:       email,
		CancelToken: hex.EncodeToString(token),
		IsActive:    true,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, false, err
	}
	return &sub, true, nil
}

// Unsubscribe flips the active flag; the row stays for re-subscription.
func (s *Service) Unsubscribe(cancelToken string) error {
	result := s.db.Model(&models.NewsletterSubscriberModel{}).
		Where("cancel_token = ?", cancelToken).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

func (s *Service) List(q pagination.Query, activeOnly bool) ([]models.NewsletterSubscriberModel, response.Pagination, error) {
	query := s.db.Model(&models.NewsletterSubscriberModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	query = query.Order("created_at DESC")

	var subs []models.NewsletterSubscriberModel
	page, err := pagination.Paginate(query, q, &subs)
	return subs, page, err
}

type Handler struct {
	svc     *Service
	sender  *mail.Sender
	cfgSvc  *settings.Service
	siteURL string
}

func NewHandler(svc *Service, sender *mail.Sender, cfgSvc *settings.Service, siteURL string) *Handler {
	return &Handler{svc: svc, sender: sender, cfgSvc: cfgSvc, siteURL: siteURL}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	group := rg.Group("/newsletter")
	group.POST("/subscribe", h.subscribe)
	group.GET("/unsubscribe", h.unsubscribe)

	authed := group.Group("", adminMW...)
	authed.GET("/subscribers", h.list)
}

func (h *Handler) subscribe(c *gin.Context) {
	var dto SubscribeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, fresh, err := h.svc.Subscribe(dto.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	// The subscriber row is already committed; emails are best-effort
	// and never fail the signup.
	if fresh {
		h.sendWelcome(sub)
		h.notifyAdmins(sub.Email)
	}
	response.OK(c, gin.H{"subscribed": true})
}

func (h *Handler) sendWelcome(sub *models.NewsletterSubscriberModel) {
	unsubscribeURL := fmt.Sprintf("%s/api/v1/newsletter/unsubscribe?token=%s",
		h.siteURL, url.QueryEscape(sub.CancelToken))
	html, err := mail.RenderNewsletterWelcome(mail.WelcomeData{UnsubscribeURL: unsubscribeURL})
	if err != nil {
		return
	}
	h.sender.SendAsync(mail.Message{
		To:      []string{sub.Email},
		Subject: "Welcome to the ClearView Retreat newsletter",
		HTML:    html,
	})
}

func (h *Handler) notifyAdmins(email string) {
	recipients := h.cfgSvc.Recipients(settings.NotifyNewsletterSignup)
	if len(recipients) == 0 {
		return
	}
	h.sender.SendAsync(mail.Message{
		To:      recipients,
		Subject: "New newsletter subscriber",
		HTML:    "<p>New subscriber: " + email + "</p>",
	})
}

func (h *Handler) unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.BadRequest(c, "token is required")
		return
	}
	if err := h.svc.Unsubscribe(token); err != nil {
		response.NotFound(c, "Subscription not found")
		return
	}
	response.OK(c, gin.H{"unsubscribed": true})
}

func (h *Handler) list(c *gin.Context) {
	subs, page, err := h.svc.List(pagination.FromContext(c), c.Query("active") != "")
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, subs, page)
}
