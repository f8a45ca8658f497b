package models

// EmailSettingModel is a key/value row for notification settings
// (recipient lists, per-form toggles, subject templates).
type EmailSettingModel struct {
	Base
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:longtext"`
}

func (EmailSettingModel) TableName() string { return "email_settings" }
