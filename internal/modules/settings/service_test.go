package settings

import (
	"testing"

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

func TestSetUpsertsAndRefreshesCache(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Set(NotifyContactForm, "office@example.com"))
	assert.Equal(t, "office@example.com", svc.Value(NotifyContactForm))

	// overwrite must be visible immediately, not after a TTL
	require.NoError(t, svc.Set(NotifyContactForm, "front-desk@example.com"))
	assert.Equal(t, "front-desk@example.com", svc.Value(NotifyContactForm))

	rows, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRecipientsParsing(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Set(NotifyNewsletterSignup, " a@example.com , b@example.com,,c@example.com "))
	assert.Equal(t,
		[]string{"a@example.com", "b@example.com", "c@example.com"},
		svc.Recipients(NotifyNewsletterSignup))

	assert.Nil(t, svc.Recipients(NotifyEventRegistration))
}

func TestDeleteSetting(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Set(NotifyContactForm, "x@example.com"))

	ok, err := svc.Delete(NotifyContactForm)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, svc.Value(NotifyContactForm))

	ok, err = svc.Delete(NotifyContactForm)
	require.NoError(t, err)
	assert.False(t, ok)
}
