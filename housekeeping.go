package main

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type HouseKeepingCmd struct {
	RetentionDays int `help:"days to keep spent or expired sharing tokens" default:"90"`
}

func (c *HouseKeepingCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -c.RetentionDays)
	return db.Transaction(func(tx *gorm.DB) error {
		// delete tokens that have been dead longer than the retention window
		res := tx.Exec(`
			DELETE FROM nfc_tokens
			WHERE is_active = false
			AND expires_at < ?
		`, cutoff)
		if res.Error != nil {
			return res.Error
		}
		fmt.Println("deleted", res.RowsAffected, "stale inactive tokens")

		// delete tokens whose owner no longer exists
		res = tx.Exec(`
			DELETE FROM nfc_tokens
			WHERE owner_id NOT IN (SELECT id FROM users)
		`)
		if res.Error != nil {
			return res.Error
		}
		fmt.Println("deleted", res.RowsAffected, "orphaned tokens")

		return nil
	})
}
