package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEventFull = errors.New("event is full")

type CreateEventDTO struct {
	Title       string     `json:"title" binding:"required"`
	Slug        string     `json:"slug"  binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartAt     time.Time  `json:"startAt" binding:"required"`
	EndAt       *time.Time `json:"endAt"`
	Capacity    *int       `json:"capacity"`
	Image       string     `json:"image"`
}

type UpdateEventDTO struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartAt     *time.Time `json:"startAt"`
	EndAt       *time.Time `json:"endAt"`
	Capacity    *int       `json:"capacity"`
	Image       *string    `json:"image"`
	IsActive    *bool      `json:"isActive"`
}

type RegisterDTO struct {
	Name   string `json:"name"  binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Guests int    `json:"guests"`
	Note   string `json:"note"`
}

type BlockedDateDTO struct {
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns active events ordered by start date; upcoming=true drops
// events that already started.
func (s *Service) List(upcoming, all bool) ([]models.EventModel, error) {
	events := []models.EventModel{}
	query := s.db.Model(&models.EventModel{})
	if !all {
		query = query.Where("is_active = ?", true)
	}
	if upcoming {
		query = query.Where("start_at >= ?", time.Now())
	}
	err := query.Order("start_at ASC, order_num ASC").Find(&events).Error
	return events, err
}

func (s *Service) Get(query string) (*models.EventModel, error) {
	var ev models.EventModel
	if err := s.db.Where("id = ? OR slug = ?", query, query).First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

func (s *Service) Create(dto *CreateEventDTO) (*models.EventModel, error) {
	var count int64
	s.db.Model(&models.EventModel{}).Where("slug = ?", dto.Slug).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("slug already exists")
	}

	ev := models.EventModel{
		Title:       dto.Title,
		Slug:        dto.Slug,
		Description: dto.Description,
		Location:    dto.Location,
		StartAt:     dto.StartAt,
		EndAt:       dto.EndAt,
		Image:       dto.Image,
		IsActive:    true,
	}
	if dto.Capacity != nil {
		ev.Capacity = *dto.Capacity
	}
	return &ev, s.db.Create(&ev).Error
}

func (s *Service) Update(id string, dto *UpdateEventDTO) (*models.EventModel, error) {
	ev, err := s.Get(id)
	if err != nil || ev == nil {
		return ev, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Slug != nil {
		updates["slug"] = *dto.Slug
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.StartAt != nil {
		updates["start_at"] = *dto.StartAt
	}
	if dto.EndAt != nil {
		updates["end_at"] = *dto.EndAt
	}
	if dto.Capacity != nil {
		updates["capacity"] = *dto.Capacity
	}
	if dto.Image != nil {
		updates["image"] = *dto.Image
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if err := s.db.Model(ev).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.EventModel{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// Register adds a signup. The event row is locked for the duration of
// the transaction so concurrent signups see each other's counts and a
// full event cannot be overshot.
func (s *Service) Register(eventID string, dto *RegisterDTO) (*models.EventRegistrationModel, error) {
	ev, err := s.Get(eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil || !ev.IsActive {
		return nil, nil
	}

	reg := models.EventRegistrationModel{
		EventID: ev.ID,
		Name:    dto.Name,
		Email:   dto.Email,
		Guests:  dto.Guests,
		Note:    dto.Note,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var locked models.EventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, "id = ?", ev.ID).Error; err != nil {
			return err
		}
		if locked.Capacity > 0 {
			var taken int64
			if err := tx.Model(&models.EventRegistrationModel{}).
				Where("event_id = ?", locked.ID).Count(&taken).Error; err != nil {
				return err
			}
			if taken >= int64(locked.Capacity) {
				return ErrEventFull
			}
		}
		return tx.Create(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Service) ListRegistrations(eventID string) ([]models.EventRegistrationModel, error) {
	regs := []models.EventRegistrationModel{}
	return regs, s.db.Where("event_id = ?", eventID).
		Order("created_at ASC").Find(&regs).Error
}

func (s *Service) DeleteRegistration(id string) (bool, error) {
	result := s.db.Delete(&models.EventRegistrationModel{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (s *Service) ListBlockedDates() ([]models.BlockedDateModel, error) {
	dates := []models.BlockedDateModel{}
	return dates, s.db.Order("date ASC").Find(&dates).Error
}

func (s *Service) CreateBlockedDate(dto *BlockedDateDTO) (*models.BlockedDateModel, error) {
	if _, err := time.Parse("2006-01-02", dto.Date); err != nil {
		return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}
	var count int64
	s.db.Model(&models.BlockedDateModel{}).Where("date = ?", dto.Date).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("date already blocked")
	}
	bd := models.BlockedDateModel{Date: dto.Date, Reason: dto.Reason}
	return &bd, s.db.Create(&bd).Error
}

func (s *Service) DeleteBlockedDate(id string) (bool, error) {
	result := s.db.Delete(&models.BlockedDateModel{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
