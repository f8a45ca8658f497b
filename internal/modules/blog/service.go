package blog

import (
	"errors"
	"fmt"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/pagination"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"gorm.io/gorm"
)

type CreatePostDTO struct {
	Title       string  `json:"title"   binding:"required"`
	Slug        string  `json:"slug"    binding:"required"`
	Excerpt     string  `json:"excerpt"`
	Text        string  `json:"text"`
	CoverImage  string  `json:"coverImage"`
	Author      string  `json:"author"`
	CategoryID  *string `json:"categoryId"`
	IsPublished *bool   `json:"isPublished"`
}

type UpdatePostDTO struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Excerpt     *string `json:"excerpt"`
	Text        *string `json:"text"`
	CoverImage  *string `json:"coverImage"`
	Author      *string `json:"author"`
	CategoryID  *string `json:"categoryId"`
	IsPublished *bool   `json:"isPublished"`
}

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type ListQuery struct {
	Page       pagination.Query
	CategoryID string
	All        bool // include unpublished (admin)
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListPosts(q ListQuery) ([]models.BlogPostModel, response.Pagination, error) {
	query := s.db.Model(&models.BlogPostModel{}).Preload("Category")
	if !q.All {
		query = query.Where("is_published = ?", true)
	}
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	query = query.Order("published_at DESC, created_at DESC")

	var posts []models.BlogPostModel
	page, err := pagination.Paginate(query, q.Page, &posts)
	return posts, page, err
}

// GetPost resolves by id first, then slug. Unpublished posts resolve only
// when admin is true.
func (s *Service) GetPost(query string, admin bool) (*models.BlogPostModel, error) {
	var post models.BlogPostModel
	err := s.db.Preload("Category").
		Where("id = ? OR slug = ?", query, query).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !post.IsPublished && !admin {
		return nil, nil
	}
	return &post, nil
}

func (s *Service) CreatePost(dto *CreatePostDTO) (*models.BlogPostModel, error) {
	var count int64
	s.db.Model(&models.BlogPostModel{}).Where("slug = ?", dto.Slug).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("slug already exists")
	}

	post := models.BlogPostModel{
		Title:      dto.Title,
		Slug:       dto.Slug,
		Excerpt:    dto.Excerpt,
		Text:       dto.Text,
		CoverImage: dto.CoverImage,
		Author:     dto.Author,
		CategoryID: dto.CategoryID,
	}
	if dto.IsPublished != nil && *dto.IsPublished {
		post.IsPublished = true
		now := time.Now()
		post.PublishedAt = &now
	}
	return &post, s.db.Create(&post).Error
}

func (s *Service) UpdatePost(id string, dto *UpdatePostDTO) (*models.BlogPostModel, error) {
	post, err := s.GetPost(id, true)
	if err != nil || post == nil {
		return post, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Slug != nil {
		updates["slug"] = *dto.Slug
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.Text != nil {
		updates["text"] = *dto.Text
	}
	if dto.CoverImage != nil {
		updates["cover_image"] = *dto.CoverImage
	}
	if dto.Author != nil {
		updates["author"] = *dto.Author
	}
	if dto.CategoryID != nil {
		updates["category_id"] = *dto.CategoryID
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
		if *dto.IsPublished && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}
	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetPost(id, true)
}

func (s *Service) DeletePost(id string) (bool, error) {
	result := s.db.Delete(&models.BlogPostModel{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (s *Service) ListCategories() ([]models.BlogCategoryModel, error) {
	var cats []models.BlogCategoryModel
	return cats, s.db.Order("created_at ASC").Find(&cats).Error
}

func (s *Service) CreateCategory(dto *CreateCategoryDTO) (*models.BlogCategoryModel, error) {
	var count int64
	s.db.Model(&models.BlogCategoryModel{}).
		Where("slug = ? OR name = ?", dto.Slug, dto.Name).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("name or slug already exists")
	}
	cat := models.BlogCategoryModel{Name: dto.Name, Slug: dto.Slug}
	return &cat, s.db.Create(&cat).Error
}

// DeleteCategory detaches the category's posts and removes the row in a
// single transaction; a failed detach leaves the category in place.
func (s *Service) DeleteCategory(id string) (bool, error) {
	var deleted bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BlogPostModel{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.BlogCategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}
