package models

import "time"

// EventModel is a retreat or public event.
type EventModel struct {
	Base
	Title       string     `json:"title"       gorm:"not null"`
	Slug        string     `json:"slug"        gorm:"uniqueIndex;not null"`
	Description string     `json:"description" gorm:"type:longtext"`
	Location    string     `json:"location"`
	StartAt     time.Time  `json:"startAt"     gorm:"index"`
	EndAt       *time.Time `json:"endAt"`
	Capacity    int        `json:"capacity"    gorm:"default:0"` // 0 = unlimited
	Image       string     `json:"image"`
	IsActive    bool       `json:"isActive"`
	OrderNum    int        `json:"order"       gorm:"column:order_num;default:0"`

	Registrations []EventRegistrationModel `json:"registrations,omitempty" gorm:"foreignKey:EventID"`
}

func (EventModel) TableName() string { return "events" }

// EventRegistrationModel is a signup for an event. EventID is a
// by-convention foreign key; no cascade behavior is relied upon.
type EventRegistrationModel struct {
	Base
	EventID string `json:"eventId" gorm:"type:char(36);index;not null"`
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Guests  int    `json:"guests"  gorm:"default:0"`
	Note    string `json:"note"    gorm:"type:text"`
}

func (EventRegistrationModel) TableName() string { return "event_registrations" }

// BlockedDateModel marks a calendar date as unavailable for bookings.
type BlockedDateModel struct {
	Base
	Date   string `json:"date"   gorm:"uniqueIndex;not null"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

func (BlockedDateModel) TableName() string { return "blocked_dates" }
