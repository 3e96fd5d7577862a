package main

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/models"
)

type CreateUserCmd struct {
	Email    string `required:"" help:"email address of the user to create"`
	Password string `required:"" help:"password of the user to create"`
}

func (c *CreateUserCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user, err := models.NewUsers(tx).Create(c.Email, c.Password)
		if err != nil {
			return err
		}
		token, err := models.NewTokens(tx).Create(user)
		if err != nil {
			return err
		}
		fmt.Println("created user", user.Email)
		fmt.Println("access token:", token.AccessToken)
		return nil
	})
}
