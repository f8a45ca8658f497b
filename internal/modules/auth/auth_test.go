package auth

import (
	"testing"

	"github.com/BuildLoopLLC/clearview-core/internal/database"
	"github.com/BuildLoopLLC/clearview-core/internal/models"
	jwtpkg "github.com/BuildLoopLLC/clearview-core/internal/pkg/jwt"
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

func TestRegisterOnlyWorksOnce(t *testing.T) {
	svc := newTestService(t)
	assert.False(t, svc.IsRegistered())

	u, err := svc.Register(RegisterDTO{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.True(t, svc.IsRegistered())

	_, err = svc.Register(RegisterDTO{Username: "intruder", Password: "letmein12345"})
	assert.ErrorIs(t, err, errOwnerRegistered)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(RegisterDTO{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)

	token, u, err := svc.Login("owner", "correct horse", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, u.LastLoginTime)

	claims, err := jwtpkg.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, _, err = svc.Login("owner", "wrong password", "127.0.0.1")
	assert.Error(t, err)

	_, _, err = svc.Login("nobody", "correct horse", "127.0.0.1")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.Register(RegisterDTO{Username: "owner", Password: "original pass"})
	require.NoError(t, err)

	assert.Error(t, svc.ChangePassword(u.ID, "wrong", "new password 1"))
	require.NoError(t, svc.ChangePassword(u.ID, "original pass", "new password 1"))

	_, _, err = svc.Login("owner", "new password 1", "127.0.0.1")
	assert.NoError(t, err)
}
