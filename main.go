package main

import (
	"github.com/alecthomas/kong"
	"gorm.io/gorm"
)

type Context struct {
	Debug bool

	Dialector gorm.Dialector
	gorm.Config
}

var cli struct {
	Debug bool   `help:"Enable debug mode."`
	DSN   string `required:"" help:"data source name" env:"DSN"`

	Serve        ServeCmd        `cmd:"" help:"Serve a local web server."`
	AutoMigrate  AutoMigrateCmd  `cmd:"" help:"Create or update the database schema."`
	CreateUser   CreateUserCmd   `cmd:"" help:"Create a new user and print their access token."`
	DeleteUser   DeleteUserCmd   `cmd:"" help:"Delete a user and everything they own."`
	HouseKeeping HouseKeepingCmd `cmd:"" help:"Purge stale sharing tokens."`
}

func main() {
	ctx := kong.Parse(&cli)
	err := ctx.Run(&Context{
		Debug:     cli.Debug,
		Dialector: newDialector(cli.DSN),
	})
	ctx.FatalIfErrorf(err)
}
