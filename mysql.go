//go:build !sqlite

package main

// mysql backing store

import (
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newDialector(dsn string) gorm.Dialector {
	return mysql.New(mysql.Config{
		DSN: mergeOptions(dsn, "charset=utf8mb4&parseTime=True&loc=Local"),
	})
}

// mergeOptions appends connection options to the DSN, joining with & when
// the DSN already carries a query string.
func mergeOptions(dsn, options string) string {
	if options == "" {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + options
	}
	return dsn + "?" + options
}

func configureDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// modest pool limits; every request touches the database at least once
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}
