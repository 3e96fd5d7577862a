package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"gorm.io/gorm"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chtnnhfndn/contacts-backend/internal/httpx"
	"github.com/chtnnhfndn/contacts-backend/models"
	"github.com/chtnnhfndn/contacts-backend/nfc"
	"github.com/chtnnhfndn/contacts-backend/profiles"
)

type ServeCmd struct {
	Addr               string `help:"address to listen" default:"localhost:8080"`
	TokenExpireMinutes int    `help:"minutes a sharing token stays redeemable" default:"60" env:"NFC_TOKEN_EXPIRE_MINUTES"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}

	if err := configureDB(db); err != nil {
		return err
	}

	env := &models.Env{
		DB:     db,
		Logger: slog.New(slog.NewTextHandler(os.Stderr)),
	}
	nfcEnv := func(r *http.Request) *nfc.Env {
		return &nfc.Env{
			Env:      env,
			TokenTTL: time.Duration(s.TokenExpireMinutes) * time.Minute,
		}
	}
	profilesEnv := func(r *http.Request) *profiles.Env {
		return &profiles.Env{
			Env: env,
		}
	}

	c := chi.NewRouter()
	c.Use(middleware.RequestID)
	c.Use(middleware.RealIP)
	c.Use(middleware.Logger)
	c.Use(middleware.Recoverer)

	c.Route("/", func(r chi.Router) {

		r.Route("/nfc", func(r chi.Router) {
			r.Post("/generate", httpx.HandlerFunc(nfcEnv, nfc.TokenCreate))
			r.Get("/validate/{token}", httpx.HandlerFunc(nfcEnv, nfc.TokenShow))
			r.Post("/connect/{token}", httpx.HandlerFunc(nfcEnv, nfc.ConnectionCreate))
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", httpx.HandlerFunc(profilesEnv, profiles.Index))
			r.Post("/{type}", httpx.HandlerFunc(profilesEnv, profiles.Create))
			r.Get("/{type}", httpx.HandlerFunc(profilesEnv, profiles.Show))
			r.Put("/{type}", httpx.HandlerFunc(profilesEnv, profiles.Update))
			r.Delete("/{type}", httpx.HandlerFunc(profilesEnv, profiles.Destroy))
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			fmt.Fprintln(w, `{"status":"healthy"}`)
		})
	})

	if ctx.Debug {
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			route = strings.Replace(route, "/*/", "/", -1)
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(c, walkFunc); err != nil {
			fmt.Printf("Logging err: %s\n", err.Error())
		}
	}

	svr := &http.Server{
		Addr:         s.Addr,
		Handler:      c,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	env.Log().Info("listening", "addr", s.Addr)
	return svr.ListenAndServe()
}
