package store

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cppla/subforum/models"
)

// A write that slips past the in-process check, as from a second process,
// is still reported as a user conflict naming both unique fields.
func TestInsertUserIndexViolation(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}))

	require.NoError(t, db.Create(&models.User{Username: "alice", Email: "shared@example.com", PasswordHash: "x"}).Error)

	dup := models.User{Username: "bob", Email: "shared@example.com", PasswordHash: "x"}
	err = insert(db, &dup, userConflict(dup))

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
	assert.Equal(t, "user", conflict.Kind)
	assert.Equal(t, "username/email", conflict.Field)
	assert.Equal(t, "bob/shared@example.com", conflict.Value)
}
