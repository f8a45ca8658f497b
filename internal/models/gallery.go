package models

// GalleryImageModel is a photo in a named album. ObjectKey points into
// object storage; URL is either the public object URL or the internal
// proxy path when the bucket is private.
type GalleryImageModel struct {
	Base
	Album     string `json:"album"     gorm:"index;not null"`
	Title     string `json:"title"`
	Caption   string `json:"caption"   gorm:"type:text"`
	ObjectKey string `json:"objectKey"`
	URL       string `json:"url"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	OrderNum  int    `json:"order"     gorm:"column:order_num;default:0"`
	IsActive  bool   `json:"isActive"`
}

func (GalleryImageModel) TableName() string { return "gallery_images" }
