package content

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"gorm.io/gorm"
)

type CreateContentDTO struct {
	Section     string                 `json:"section"     binding:"required"`
	Subsection  string                 `json:"subsection"`
	ContentType string                 `json:"contentType"`
	Content     string                 `json:"content"`
	Metadata    map[string]interface{} `json:"metadata"`
	Order       *int                   `json:"order"`
	IsActive    *bool                  `json:"isActive"`
}

type UpdateContentDTO struct {
	Section     *string                `json:"section"`
	Subsection  *string                `json:"subsection"`
	ContentType *string                `json:"contentType"`
	Content     *string                `json:"content"`
	Metadata    map[string]interface{} `json:"metadata"`
	Order       *int                   `json:"order"`
	IsActive    *bool                  `json:"isActive"`
}

// ReorderPair assigns an explicit order to one item.
type ReorderPair struct {
	ID    string `json:"id"    binding:"required"`
	Order int    `json:"order"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// FetchSection returns the active items of a section (optionally narrowed
// to a subsection), ordered by order_num then creation time. An unknown
// section yields an empty slice, not an error.
func (s *Service) FetchSection(section, subsection string) ([]models.ContentItemModel, error) {
	return s.fetchSection(section, subsection, false)
}

// FetchSectionAll includes inactive items; used by the admin list views.
func (s *Service) FetchSectionAll(section, subsection string) ([]models.ContentItemModel, error) {
	return s.fetchSection(section, subsection, true)
}

func (s *Service) fetchSection(section, subsection string, includeInactive bool) ([]models.ContentItemModel, error) {
	items := []models.ContentItemModel{}
	query := s.db.Where("section = ?", section)
	if subsection != "" {
		query = query.Where("subsection = ?", subsection)
	}
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("order_num ASC, created_at ASC").Find(&items).Error
	return items, err
}

// FetchByID returns (nil, nil) when the row does not exist.
func (s *Service) FetchByID(id string) (*models.ContentItemModel, error) {
	var item models.ContentItemModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item. Order defaults to the end of the target
// section; IsActive defaults to true.
func (s *Service) Create(dto *CreateContentDTO) (*models.ContentItemModel, error) {
	item := models.ContentItemModel{
		Section:     dto.Section,
		Subsection:  dto.Subsection,
		ContentType: dto.ContentType,
		Content:     dto.Content,
		Metadata:    dto.Metadata,
		IsActive:    true,
	}
	if item.ContentType == "" {
		item.ContentType = "text"
	}
	if dto.IsActive != nil {
		item.IsActive = *dto.IsActive
	}

	if dto.Order != nil {
		item.OrderNum = *dto.Order
	} else {
		var max sql.NullInt64
		err := s.db.Model(&models.ContentItemModel{}).
			Where("section = ?", dto.Section).
			Select("MAX(order_num)").Scan(&max).Error
		if err != nil {
			return nil, err
		}
		if max.Valid {
			item.OrderNum = int(max.Int64) + 1
		}
	}

	return &item, s.db.Create(&item).Error
}

// Update merges only the provided fields. UpdatedAt is refreshed even for
// an empty patch.
func (s *Service) Update(id string, dto *UpdateContentDTO) (*models.ContentItemModel, error) {
	item, err := s.FetchByID(id)
	if err != nil || item == nil {
		return item, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if dto.Section != nil {
		updates["section"] = *dto.Section
	}
	if dto.Subsection != nil {
		updates["subsection"] = *dto.Subsection
	}
	if dto.ContentType != nil {
		updates["content_type"] = *dto.ContentType
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Order != nil {
		updates["order_num"] = *dto.Order
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.Metadata != nil {
		// Raw map updates bypass the gorm serializer, so marshal here.
		raw, err := json.Marshal(dto.Metadata)
		if err != nil {
			return nil, err
		}
		updates["metadata"] = string(raw)
	}

	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.FetchByID(id)
}

// Delete removes the row permanently. Callers wanting a soft hide set
// isActive=false through Update instead.
func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.ContentItemModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Reorder writes explicit order values in one transaction. A pair that
// matches no row fails the whole batch so a partial reorder is never
// persisted.
func (s *Service) Reorder(pairs []ReorderPair) error {
	if len(pairs) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range pairs {
			result := tx.Model(&models.ContentItemModel{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{"order_num": p.Order})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errors.New("content item not found: " + p.ID)
			}
		}
		return nil
	})
}
