package models

// NewsletterSubscriberModel manages newsletter signups. Unsubscribe only
// flips IsActive so the row survives for re-subscription; the email stays
// unique across active and inactive rows.
type NewsletterSubscriberModel struct {
	Base
	Email       string `json:"email"    gorm:"uniqueIndex;not null"`
	CancelToken string `json:"-"        gorm:"uniqueIndex"`
	IsActive    bool   `json:"isActive" gorm:"column:is_active"`
}

func (NewsletterSubscriberModel) TableName() string { return "newsletter_subscribers" }

// ContactSubmissionModel is a message sent through the contact form.
type ContactSubmissionModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" gorm:"type:longtext"`
	IsRead  bool   `json:"isRead"  gorm:"default:false"`
}

func (ContactSubmissionModel) TableName() string { return "contact_submissions" }
