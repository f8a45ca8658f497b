package models

// StaffMemberModel is a staff or board member shown on the about pages.
type StaffMemberModel struct {
	Base
	Name     string `json:"name"     gorm:"not null"`
	Role     string `json:"role"`
	Bio      string `json:"bio"      gorm:"type:longtext"`
	Photo    string `json:"photo"`
	Email    string `json:"email"`
	OrderNum int    `json:"order"    gorm:"column:order_num;default:0"`
	IsActive bool   `json:"isActive"`
}

func (StaffMemberModel) TableName() string { return "staff_members" }
