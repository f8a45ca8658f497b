package models

import "time"

// BlogPostModel is a blog article. Text is stored as markdown and rendered
// to HTML on demand.
type BlogPostModel struct {
	Base
	Title       string     `json:"title"       gorm:"not null"`
	Slug        string     `json:"slug"        gorm:"uniqueIndex;not null"`
	Excerpt     string     `json:"excerpt"     gorm:"type:text"`
	Text        string     `json:"text"        gorm:"type:longtext"`
	CoverImage  string     `json:"coverImage"`
	Author      string     `json:"author"`
	CategoryID  *string    `json:"categoryId"  gorm:"type:char(36);index"`
	IsPublished bool       `json:"isPublished" gorm:"default:false"`
	PublishedAt *time.Time `json:"publishedAt"`
	OrderNum    int        `json:"order"       gorm:"column:order_num;default:0"`

	Category *BlogCategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (BlogPostModel) TableName() string { return "blog_posts" }

// BlogCategoryModel groups blog posts.
type BlogCategoryModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	Posts []BlogPostModel `json:"posts,omitempty" gorm:"foreignKey:CategoryID"`
}

func (BlogCategoryModel) TableName() string { return "blog_categories" }
