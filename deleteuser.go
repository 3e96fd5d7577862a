package main

import (
	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/models"
)

type DeleteUserCmd struct {
	Email string `required:"" help:"email address of the user to delete"`
}

func (d *DeleteUserCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user, err := models.NewUsers(tx).FindByEmail(d.Email)
		if err != nil {
			return err
		}

		// connections reference the user from both sides
		if err := tx.Where("user_id = ? OR connected_user_id = ?", user.ID, user.ID).Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.NFCToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Token{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
