package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockUser creates a new user in the database.
func MockUser(t *testing.T, tx *gorm.DB, name string) *User {
	t.Helper()
	require := require.New(t)

	user, err := NewUsers(tx).Create(fmt.Sprintf("%s@example.com", name), "hunter2hunter2")
	require.NoError(err)
	return user
}

// MockProfile creates a profile for one of user's audiences.
func MockProfile(t *testing.T, tx *gorm.DB, user *User, typ ProfileType) *Profile {
	t.Helper()
	require := require.New(t)

	profile, err := NewProfiles(tx).Create(user.ID, typ, "Kim", "https://example.com/kim.jpg", map[string]any{
		"phone_number": "+61 400 000 000",
	})
	require.NoError(err)
	return profile
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	require := require.New(t)
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger: logger.Default.LogMode(func() logger.LogLevel {
			return logger.Warn
		}()),
	})
	require.NoError(err)

	err = db.AutoMigrate(AllTables()...)
	require.NoError(err)

	// enable foreign key constraints
	err = db.Exec("PRAGMA foreign_keys = ON").Error
	require.NoError(err)

	return db
}
