package event

import (
	"testing"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db)
}

func createEvent(t *testing.T, svc *Service, slug string, capacity int) string {
	t.Helper()
	ev, err := svc.Create(&CreateEventDTO{
		Title:    "Family Retreat Weekend",
		Slug:     slug,
		StartAt:  time.Now().Add(48 * time.Hour),
		Capacity: &capacity,
	})
	require.NoError(t, err)
	return ev.ID
}

func TestRegisterRespectsCapacity(t *testing.T) {
	svc := newTestService(t)
	id := createEvent(t, svc, "family-retreat", 2)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		reg, err := svc.Register(id, &RegisterDTO{Name: "Guest", Email: email})
		require.NoError(t, err)
		require.NotNil(t, reg)
	}

	_, err := svc.Register(id, &RegisterDTO{Name: "Late", Email: "c@example.com"})
	assert.ErrorIs(t, err, ErrEventFull)

	regs, err := svc.ListRegistrations(id)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}

func TestRegisterUnlimitedWhenNoCapacity(t *testing.T) {
	svc := newTestService(t)
	id := createEvent(t, svc, "open-house", 0)

	for i := 0; i < 5; i++ {
		reg, err := svc.Register(id, &RegisterDTO{Name: "Guest", Email: "g@example.com"})
		require.NoError(t, err)
		require.NotNil(t, reg)
	}
}

func TestRegisterInactiveEvent(t *testing.T) {
	svc := newTestService(t)
	id := createEvent(t, svc, "cancelled-retreat", 10)

	hidden := false
	_, err := svc.Update(id, &UpdateEventDTO{IsActive: &hidden})
	require.NoError(t, err)

	reg, err := svc.Register(id, &RegisterDTO{Name: "Guest", Email: "x@example.com"})
	require.NoError(t, err)
	assert.Nil(t, reg)
}

func TestDuplicateSlugRejected(t *testing.T) {
	svc := newTestService(t)
	createEvent(t, svc, "summer-camp", 0)

	_, err := svc.Create(&CreateEventDTO{
		Title:   "Another",
		Slug:    "summer-camp",
		StartAt: time.Now(),
	})
	assert.Error(t, err)
}

func TestBlockedDates(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateBlockedDate(&BlockedDateDTO{Date: "2026-12-24", Reason: "holiday"})
	require.NoError(t, err)

	_, err = svc.CreateBlockedDate(&BlockedDateDTO{Date: "2026-12-24"})
	assert.Error(t, err)

	_, err = svc.CreateBlockedDate(&BlockedDateDTO{Date: "not-a-date"})
	assert.Error(t, err)

	dates, err := svc.ListBlockedDates()
	require.NoError(t, err)
	assert.Len(t, dates, 1)
}
