package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/snowflake"
)

// A Token is an opaque bearer credential.
// A Token belongs to a User.
type Token struct {
	AccessToken string `gorm:"size:64;primaryKey;autoIncrement:false"`
	CreatedAt   time.Time
	UserID      snowflake.ID `gorm:"not null"`
	User        *User        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
}

type Tokens struct {
	db *gorm.DB
}

func NewTokens(db *gorm.DB) *Tokens {
	return &Tokens{db: db}
}

// Create issues a fresh bearer credential for user.
func (t *Tokens) Create(user *User) (*Token, error) {
	token := &Token{
		AccessToken: uuid.New().String(),
		UserID:      user.ID,
	}
	return token, t.db.Create(token).Error
}
