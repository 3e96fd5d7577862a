package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/snowflake"
)

// ProfileType identifies which audience a profile is shown to.
type ProfileType string

const (
	ProfileFamily        ProfileType = "family"
	ProfileFriends       ProfileType = "friends"
	ProfileWork          ProfileType = "work"
	ProfileAcquaintances ProfileType = "acquaintances"
)

// AllProfileTypes lists every audience a user can maintain a profile for.
var AllProfileTypes = []ProfileType{
	ProfileFamily,
	ProfileFriends,
	ProfileWork,
	ProfileAcquaintances,
}

// Valid reports whether t is one of the known audiences.
func (t ProfileType) Valid() bool {
	for _, known := range AllProfileTypes {
		if t == known {
			return true
		}
	}
	return false
}

// A Profile is the bundle of contact details a user exposes to one audience.
// A Profile belongs to a User; a User has at most one Profile per audience.
// Attrs is opaque to the server: each audience carries whatever fields the
// client chooses to share with it (phone numbers, socials, and so on).
type Profile struct {
	ID        snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    snowflake.ID `gorm:"uniqueIndex:uidx_profiles_user_id_type;not null"`
	User      *User        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	Type      ProfileType  `gorm:"size:16;uniqueIndex:uidx_profiles_user_id_type;not null"`
	Name      string       `gorm:"size:64;not null"`
	Photo     string       `gorm:"size:255"`
	Attrs     datatypes.JSONMap
}

type Profiles struct {
	db *gorm.DB
}

func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

// Create stores a new profile for one of userID's audiences.
func (p *Profiles) Create(userID snowflake.ID, typ ProfileType, name, photo string, attrs map[string]any) (*Profile, error) {
	profile := &Profile{
		ID:     snowflake.Now(),
		UserID: userID,
		Type:   typ,
		Name:   name,
		Photo:  photo,
		Attrs:  attrs,
	}
	return profile, p.db.Create(profile).Error
}

// Find finds the profile userID maintains for the given audience.
func (p *Profiles) Find(userID snowflake.ID, typ ProfileType) (*Profile, error) {
	var profile Profile
	return &profile, p.db.Where("user_id = ? AND type = ?", userID, typ).Take(&profile).Error
}

// Update applies changes to the profile userID maintains for the given
// audience. Clients send only the fields they want changed: an empty name
// or photo leaves the stored value alone, and attrs are merged key by key
// over the existing bag.
func (p *Profiles) Update(userID snowflake.ID, typ ProfileType, name, photo string, attrs map[string]any) (*Profile, error) {
	profile, err := p.Find(userID, typ)
	if err != nil {
		return nil, err
	}
	if name != "" {
		profile.Name = name
	}
	if photo != "" {
		profile.Photo = photo
	}
	if len(attrs) > 0 {
		if profile.Attrs == nil {
			profile.Attrs = datatypes.JSONMap{}
		}
		for k, v := range attrs {
			profile.Attrs[k] = v
		}
	}
	return profile, p.db.Save(profile).Error
}

// FindAll returns every profile userID maintains.
func (p *Profiles) FindAll(userID snowflake.ID) ([]Profile, error) {
	var profiles []Profile
	return profiles, p.db.Where("user_id = ?", userID).Order("type").Find(&profiles).Error
}

// Delete removes the profile userID maintains for the given audience and
// reports whether there was one. NFC tokens issued against the profile are
// left behind; redeeming them fails once the profile is gone.
func (p *Profiles) Delete(userID snowflake.ID, typ ProfileType) (bool, error) {
	res := p.db.Where("user_id = ? AND type = ?", userID, typ).Delete(&Profile{})
	return res.RowsAffected > 0, res.Error
}
