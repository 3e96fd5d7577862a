package models

import (
	"crypto/rand"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/snowflake"
)

// tokenAlphabet and tokenLength fix the wire format of sharing token values.
// 62 symbols at 32 positions is roughly 190 bits, which cannot be guessed
// within a token's lifetime.
const (
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength   = 32
)

// An NFCToken grants one-time access to form a Connection to one of its
// owner's profiles. A token leaves the active state exactly once: it is
// superseded when its owner issues a newer token for the same audience,
// or spent when redeemed or found expired. All end states clear IsActive
// and are terminal. Spent tokens are kept for audit until housekeeping
// prunes them.
type NFCToken struct {
	ID          snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	CreatedAt   time.Time
	OwnerID     snowflake.ID `gorm:"index:idx_nfc_tokens_owner_type;not null"`
	Owner       *User        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	Token       string       `gorm:"size:32;uniqueIndex;not null"`
	ProfileType ProfileType  `gorm:"size:16;index:idx_nfc_tokens_owner_type;not null"`
	IsActive    bool         `gorm:"not null;default:true"`
	ExpiresAt   time.Time    `gorm:"not null"`
}

// Expired reports whether the token's lifetime had passed at now.
func (t *NFCToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

type NFCTokens struct {
	db *gorm.DB
}

func NewNFCTokens(db *gorm.DB) *NFCTokens {
	return &NFCTokens{db: db}
}

// Issue creates a fresh token for one of ownerID's audiences, superseding
// any still-active token for the same audience. Supersession and insert run
// in one transaction so two racing issuers cannot leave two active tokens
// behind.
func (n *NFCTokens) Issue(ownerID snowflake.ID, typ ProfileType, ttl time.Duration) (*NFCToken, error) {
	value, err := generateTokenValue()
	if err != nil {
		return nil, err
	}
	token := &NFCToken{
		ID:          snowflake.Now(),
		OwnerID:     ownerID,
		Token:       value,
		ProfileType: typ,
		IsActive:    true,
		ExpiresAt:   time.Now().UTC().Add(ttl),
	}
	err = n.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&NFCToken{}).
			Where("owner_id = ? AND profile_type = ? AND is_active = ?", ownerID, typ, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// FindActive looks up a token by its wire value. Superseded, redeemed and
// lazily-expired tokens are invisible here.
func (n *NFCTokens) FindActive(value string) (*NFCToken, error) {
	var token NFCToken
	return &token, n.db.Where("token = ? AND is_active = ?", value, true).Take(&token).Error
}

// CountActive returns the number of active tokens ownerID holds for the
// given audience.
func (n *NFCTokens) CountActive(ownerID snowflake.ID, typ ProfileType) (int64, error) {
	var count int64
	err := n.db.Model(&NFCToken{}).
		Where("owner_id = ? AND profile_type = ? AND is_active = ?", ownerID, typ, true).
		Count(&count).Error
	return count, err
}

// Deactivate clears IsActive if, and only if, it is still set, and reports
// whether this call was the one that spent the token. Racing redeemers use
// the report to tell winner from loser.
func (n *NFCTokens) Deactivate(token *NFCToken) (bool, error) {
	res := n.db.Model(&NFCToken{}).
		Where("id = ? AND is_active = ?", token.ID, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	token.IsActive = false
	return res.RowsAffected > 0, nil
}

// generateTokenValue draws a tokenLength character string from the platform
// CSPRNG.
func generateTokenValue() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, tokenLength)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
