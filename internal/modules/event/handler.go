package event

import (
	"errors"

	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/mail"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/settings"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc    *Service
	sender *mail.Sender
	cfgSvc *settings.Service
}

func NewHandler(svc *Service, sender *mail.Sender, cfgSvc *settings.Service) *Handler {
	return &Handler{svc: svc, sender: sender, cfgSvc: cfgSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW ...gin.HandlerFunc) {
	events := rg.Group("/events")
	events.GET("", h.list)
	events.GET("/:query", h.get)
	events.POST("/:query/register", h.register)

	authed := events.Group("", adminMW...)
	authed.POST("", h.create)
	authed.PUT("/:query", h.update)
	authed.PATCH("/:query", h.update)
	authed.DELETE("/:query", h.delete)
	authed.GET("/:query/registrations", h.listRegistrations)

	regs := rg.Group("/event-registrations", adminMW...)
	regs.DELETE("/:id", h.deleteRegistration)

	blocked := rg.Group("/blocked-dates")
	blocked.GET("", h.listBlockedDates)
	authedBlocked := blocked.Group("", adminMW...)
	authedBlocked.POST("", h.createBlockedDate)
	authedBlocked.DELETE("/:id", h.deleteBlockedDate)
}

func (h *Handler) list(c *gin.Context) {
	all := c.Query("all") != "" && middleware.IsAuthenticated(c)
	events, err := h.svc.List(c.Query("upcoming") != "", all)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, events)
}

func (h *Handler) get(c *gin.Context) {
	ev, err := h.svc.Get(c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ev == nil || (!ev.IsActive && !middleware.IsAuthenticated(c)) {
		response.NotFound(c, "Event not found")
		return
	}
	response.Data(c, ev)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateEventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ev, err := h.svc.Create(&dto)
	if err != nil {
		if err.Error() == "slug already exists" {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": ev.ID, "data": ev})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateEventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ev, err := h.svc.Update(c.Param("query"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ev == nil {
		response.NotFound(c, "Event not found")
		return
	}
	response.OK(c, gin.H{"data": ev})
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Event not found")
		return
	}
	response.OK(c, nil)
}

// register handles public event signups. The row is committed first; the
// admin notification email is best-effort afterwards.
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ev, err := h.svc.Get(c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ev == nil {
		response.NotFound(c, "Event not found")
		return
	}

	reg, err := h.svc.Register(ev.ID, &dto)
	if err != nil {
		if errors.Is(err, ErrEventFull) {
			response.Conflict(c, "Event is full")
			return
		}
		response.InternalError(c, err)
		return
	}
	if reg == nil {
		response.NotFound(c, "Event not found")
		return
	}

	h.notify(ev.Title, &dto)
	response.OK(c, gin.H{"id": reg.ID})
}

func (h *Handler) notify(eventTitle string, dto *RegisterDTO) {
	recipients := h.cfgSvc.Recipients(settings.NotifyEventRegistration)
	if len(recipients) == 0 {
		return
	}
	html, err := mail.RenderRegistrationNotify(mail.RegistrationNotifyData{
		Name:       dto.Name,
		Email:      dto.Email,
		EventTitle: eventTitle,
		Guests:     dto.Guests,
		Note:       dto.Note,
	})
	if err != nil {
		return
	}
	h.sender.SendAsync(mail.Message{
		To:      recipients,
		Subject: "New registration: " + eventTitle,
		HTML:    html,
	})
}

func (h *Handler) listRegistrations(c *gin.Context) {
	ev, err := h.svc.Get(c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ev == nil {
		response.NotFound(c, "Event not found")
		return
	}
	regs, err := h.svc.ListRegistrations(ev.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, regs)
}

func (h *Handler) deleteRegistration(c *gin.Context) {
	ok, err := h.svc.DeleteRegistration(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Registration not found")
		return
	}
	response.OK(c, nil)
}

func (h *Handler) listBlockedDates(c *gin.Context) {
	dates, err := h.svc.ListBlockedDates()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, dates)
}

func (h *Handler) createBlockedDate(c *gin.Context) {
	var dto BlockedDateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	bd, err := h.svc.CreateBlockedDate(&dto)
	if err != nil {
		switch err.Error() {
		case "date already blocked":
			response.Conflict(c, err.Error())
		case "invalid date, expected YYYY-MM-DD":
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"id": bd.ID, "data": bd})
}

func (h *Handler) deleteBlockedDate(c *gin.Context) {
	ok, err := h.svc.DeleteBlockedDate(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, "Blocked date not found")
		return
	}
	response.OK(c, nil)
}
