package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/snowflake"
)

// A Connection records that one user has been granted visibility into one
// of another user's profiles. Connections are one-way and deduplicated per
// user pair: a second share between the same two users is rejected no
// matter which audience it is for. A Connection is never mutated; it only
// disappears with the users at its ends.
type Connection struct {
	ID              snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	CreatedAt       time.Time
	UserID          snowflake.ID `gorm:"uniqueIndex:uidx_connections_user_connected;not null"` // the viewer
	User            *User        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	ConnectedUserID snowflake.ID `gorm:"uniqueIndex:uidx_connections_user_connected;not null"` // the profile owner
	ConnectedUser   *User        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	ConnectionType  ProfileType  `gorm:"size:16;not null"`
}

type Connections struct {
	db *gorm.DB
}

func NewConnections(db *gorm.DB) *Connections {
	return &Connections{db: db}
}

// Exists reports whether viewerID already holds a connection to ownerID,
// for any audience.
func (c *Connections) Exists(viewerID, ownerID snowflake.ID) (bool, error) {
	var count int64
	err := c.db.Model(&Connection{}).
		Where("user_id = ? AND connected_user_id = ?", viewerID, ownerID).
		Count(&count).Error
	return count > 0, err
}

// Create records that viewerID may now see ownerID's profile for the given
// audience.
func (c *Connections) Create(viewerID, ownerID snowflake.ID, typ ProfileType) (*Connection, error) {
	connection := &Connection{
		ID:              snowflake.Now(),
		UserID:          viewerID,
		ConnectedUserID: ownerID,
		ConnectionType:  typ,
	}
	return connection, c.db.Create(connection).Error
}
