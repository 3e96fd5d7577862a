package models

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/exp/slog"
	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/httpx"
)

// Env carries the process-wide dependencies shared by every request. One Env
// is built at startup around the single database connection pool and handed
// to each package's request environment.
type Env struct {
	// DB is the database connection.
	DB     *gorm.DB
	Logger *slog.Logger
}

func (e *Env) Log() *slog.Logger {
	return e.Logger
}

// Authenticate resolves the bearer credential attached to the request and,
// if successful, returns the user associated with the credential.
func (e *Env) Authenticate(r *http.Request) (*User, error) {
	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	var token Token
	if err := e.DB.Joins("User").First(&token, "access_token = ?", bearer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.Code(http.StatusUnauthorized, "AUTH_ERROR", errors.New("invalid authentication credentials"))
		}
		return nil, err
	}
	return token.User, nil
}
