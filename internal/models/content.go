package models

// ContentItemModel is one named piece of editable page content. Items are
// grouped by section (and optionally subsection); templates pick a specific
// item out of a section via the "name" key carried in Metadata.
type ContentItemModel struct {
	Base
	Section     string                 `json:"section"     gorm:"index;not null"`
	Subsection  string                 `json:"subsection"  gorm:"index"`
	ContentType string                 `json:"contentType" gorm:"default:text"`
	Content     string                 `json:"content"     gorm:"type:longtext"`
	Metadata    map[string]interface{} `json:"metadata"    gorm:"type:longtext;serializer:json"`
	OrderNum    int                    `json:"order"       gorm:"column:order_num;default:0"`
	// no column default: a DB default would override an explicit false on insert
	IsActive bool `json:"isActive"`
}

func (ContentItemModel) TableName() string { return "content_items" }

// Name returns the template slot label carried in metadata, if any.
func (m *ContentItemModel) Name() string {
	if m.Metadata == nil {
		return ""
	}
	name, _ := m.Metadata["name"].(string)
	return name
}

// IsRich reports whether the content should be injected as raw markup.
func (m *ContentItemModel) IsRich() bool {
	return m.ContentType == "html" || m.ContentType == "richtext"
}
