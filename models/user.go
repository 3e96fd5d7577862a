package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/snowflake"
)

// A User is a registered identity on the platform. A User has at most one
// Profile per audience, owns the NFC tokens they issue, and sits at either
// end of Connections. The password hash exists only for credentials created
// from the command line; session management proper is the identity
// provider's problem.
type User struct {
	ID                snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Email             string `gorm:"size:64;uniqueIndex;not null"`
	EncryptedPassword []byte `gorm:"size:60;not null"`
}

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create registers a new user with the given email and password.
func (u *Users) Create(email, password string) (*User, error) {
	passwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:                snowflake.Now(),
		Email:             email,
		EncryptedPassword: passwd,
	}
	return user, u.db.Create(user).Error
}

// FindByEmail finds a user by email address.
func (u *Users) FindByEmail(email string) (*User, error) {
	var user User
	return &user, u.db.Where("email = ?", email).Take(&user).Error
}
