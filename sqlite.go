//go:build sqlite

package main

// sqlite backing store

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newDialector(dsn string) gorm.Dialector {
	return &sqlite.Dialector{
		DSN: dsn,
	}
}

func configureDB(db *gorm.DB) error {
	// sqlite ships with foreign key enforcement off; the schema relies on
	// cascading deletes from users.
	return db.Exec("PRAGMA foreign_keys = ON").Error
}
