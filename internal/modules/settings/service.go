package settings

import (
	"strings"
	"sync"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known setting names. Each holds a comma-separated recipient list;
// an absent or empty value disables that notification.
const (
	NotifyContactForm       = "notify_contact_form"
	NotifyEventRegistration = "notify_event_registration"
	NotifyNewsletterSignup  = "notify_newsletter_signup"
)

// Service reads and writes email settings, keeping a per-process copy so
// the notification path does not hit the database on every public write.
type Service struct {
	db *gorm.DB

	mu     sync.RWMutex
	loaded bool
	values map[string]string
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// All returns every setting, loading from the DB on first use.
func (s *Service) All() (map[string]string, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.values, nil
	}
	s.mu.RUnlock()

	return s.load()
}

func (s *Service) load() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []models.EmailSettingModel
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Name] = row.Value
	}
	s.values = values
	s.loaded = true
	return s.values, nil
}

// Value returns a single setting, or "" when unset or unavailable.
func (s *Service) Value(name string) string {
	values, err := s.All()
	if err != nil {
		return ""
	}
	return values[name]
}

// Recipients parses a setting's comma-separated email list.
func (s *Service) Recipients(name string) []string {
	raw := s.Value(name)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Set upserts a setting and refreshes the cached copy.
func (s *Service) Set(name, value string) error {
	row := models.EmailSettingModel{Name: name, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Delete removes a setting; reports whether the row existed.
func (s *Service) Delete(name string) (bool, error) {
	result := s.db.Where("name = ?", name).Delete(&models.EmailSettingModel{})
	if result.Error != nil {
		return false, result.Error
	}
	s.Invalidate()
	return result.RowsAffected > 0, nil
}

// List returns the raw rows for the admin surface.
func (s *Service) List() ([]models.EmailSettingModel, error) {
	rows := []models.EmailSettingModel{}
	return rows, s.db.Order("name ASC").Find(&rows).Error
}

// Invalidate clears the in-memory copy, forcing a DB reload on next read.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.values = nil
}
