package newsletter

import (
	"testing"

	"github.com/BuildLoopLLC/clearview-core/internal/database"
	"github.com/BuildLoopLLC/clearview-core/internal/models"
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

func TestSubscribeDuplicateIsNoOp(t *testing.T) {
	svc := newTestService(t)

	first, fresh, err := svc.Subscribe("family@example.com")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.True(t, first.IsActive)
	assert.NotEmpty(t, first.CancelToken)

	again, fresh, err := svc.Subscribe("family@example.com")
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, first.ID, again.ID)

	var count int64
	require.NoError(t, svc.db.Model(&models.NewsletterSubscriberModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUnsubscribeKeepsRow(t *testing.T) {
	svc := newTestService(t)

	sub, _, err := svc.Subscribe("guest@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(sub.CancelToken))

	var row models.NewsletterSubscriberModel
	require.NoError(t, svc.db.Where("email = ?", "guest@example.com").First(&row).Error)
	assert.False(t, row.IsActive)

	// Re-subscribing reactivates the same row instead of inserting another.
	back, fresh, err := svc.Subscribe("guest@example.com")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, sub.ID, back.ID)
	assert.True(t, back.IsActive)
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	svc := newTestService(t)
	assert.Error(t, svc.Unsubscribe("no-such-token"))
}
