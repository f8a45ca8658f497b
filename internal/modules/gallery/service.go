package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/storage/object"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateImageDTO struct {
	Album   string `json:"album" binding:"required"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
	URL     string `json:"url"` // external image; ignored when a file is uploaded
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Order   *int   `json:"order"`
}

type UpdateImageDTO struct {
	Album    *string `json:"album"`
	Title    *string `json:"title"`
	Caption  *string `json:"caption"`
	Width    *int    `json:"width"`
	Height   *int    `json:"height"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

type ReorderPair struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order"`
}

type Service struct {
	db    *gorm.DB
	store *object.Store
	log   *zap.Logger
}

func NewService(db *gorm.DB, store *object.Store, log *zap.Logger) *Service {
	return &Service{db: db, store: store, log: log}
}

// ListAlbums returns the distinct album names that have active images.
func (s *Service) ListAlbums() ([]string, error) {
	var albums []string
	err := s.db.Model(&models.GalleryImageModel{}).
		Where("is_active = ?", true).
		Distinct("album").
		Order("album ASC").
		Pluck("album", &albums).Error
	if err != nil {
		return nil, err
	}
	if albums == nil {
		albums = []string{}
	}
	return albums, nil
}

func (s *Service) ListImages(album string, includeHidden bool) ([]models.GalleryImageModel, error) {
	query := s.db.Model(&models.GalleryImageModel{})
	if album != "" {
		query = query.Where("album = ?", album)
	}
	if !includeHidden {
		query = query.Where("is_active = ?", true)
	}

	var images []models.GalleryImageModel
	if err := query.Order("order_num ASC, created_at ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.GalleryImageModel{}
	}
	return images, nil
}

func (s *Service) GetImage(id string) (*models.GalleryImageModel, error) {
	var img models.GalleryImageModel
	err := s.db.Where("id = ?", id).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// CreateImage stores the optional file upload first, so a failed upload
// never leaves an image row pointing at nothing.
func (s *Service) CreateImage(ctx context.Context, dto CreateImageDTO, file []byte, filename, contentType string) (*models.GalleryImageModel, error) {
	img := models.GalleryImageModel{
		Album:   dto.Album,
		Title:   dto.Title,
		Caption: dto.Caption,
		URL:     dto.URL,
		Width:   dto.Width,
		Height:  dto.Height,
	}
	img.IsActive = true

	if len(file) > 0 {
		if !s.store.Enabled() {
			return nil, fmt.Errorf("gallery: object storage is not configured")
		}
		key := s.store.NewKey("gallery", filename)
		url, err := s.store.Put(ctx, key, file, contentType)
		if err != nil {
			return nil, err
		}
		img.ObjectKey = key
		if url != "" {
			img.URL = url
		} else {
			img.URL = "/api/v1/objects/" + key
		}
	}

	if dto.Order != nil {
		img.OrderNum = *dto.Order
	} else {
		var max sql.NullInt64
		s.db.Model(&models.GalleryImageModel{}).
			Where("album = ?", dto.Album).
			Select("MAX(order_num)").Scan(&max)
		if max.Valid {
			img.OrderNum = int(max.Int64) + 1
		}
	}

	if err := s.db.Create(&img).Error; err != nil {
		if img.ObjectKey != "" {
			if derr := s.store.Delete(ctx, img.ObjectKey); derr != nil {
				s.log.Warn("orphaned object after failed insert", zap.String("key", img.ObjectKey), zap.Error(derr))
			}
		}
		return nil, err
	}
	return &img, nil
}

func (s *Service) UpdateImage(id string, dto UpdateImageDTO) (*models.GalleryImageModel, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if dto.Album != nil {
		updates["album"] = *dto.Album
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Caption != nil {
		updates["caption"] = *dto.Caption
	}
	if dto.Width != nil {
		updates["width"] = *dto.Width
	}
	if dto.Height != nil {
		updates["height"] = *dto.Height
	}
	if dto.Order != nil {
		updates["order_num"] = *dto.Order
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if err := s.db.Model(&models.GalleryImageModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetImage(id)
}

// DeleteImage removes the row and then the stored object, best-effort.
func (s *Service) DeleteImage(ctx context.Context, id string) (bool, error) {
	img, err := s.GetImage(id)
	if err != nil {
		return false, err
	}
	if img == nil {
		return false, nil
	}

	if err := s.db.Delete(&models.GalleryImageModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	if img.ObjectKey != "" {
		if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
			s.log.Warn("object cleanup failed", zap.String("key", img.ObjectKey), zap.Error(err))
		}
	}
	return true, nil
}

// Reorder applies a batch of order updates atomically.
func (s *Service) Reorder(pairs []ReorderPair) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range pairs {
			result := tx.Model(&models.GalleryImageModel{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{"order_num": p.Order, "updated_at": time.Now()})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("gallery: image %s not found", p.ID)
			}
		}
		return nil
	})
}
