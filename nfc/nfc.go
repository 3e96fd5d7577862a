// Package nfc implements the sharing token protocol. Owners mint
// short-lived, single-use tokens for one of their profiles and hand the
// value to another device out-of-band (an NFC tap); whoever presents the
// token can preview the shared profile and redeem it for a connection to
// the owner.
package nfc

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/httpx"
	"github.com/chtnnhfndn/contacts-backend/internal/to"
	"github.com/chtnnhfndn/contacts-backend/models"
)

type Env struct {
	*models.Env

	// TokenTTL is how long a freshly issued token stays redeemable.
	TokenTTL time.Duration
}

// errTokenSpent aborts a redemption transaction when another redeemer spent
// the token between our read and our write.
var errTokenSpent = errors.New("token already spent")

// TokenCreate mints a sharing token for one of the caller's profiles. Any
// still-active token for the same audience is superseded, so at most one
// token per (owner, audience) is live at any instant.
func TokenCreate(env *Env, w http.ResponseWriter, r *http.Request) error {
	user, err := env.Authenticate(r)
	if err != nil {
		return err
	}
	var params struct {
		ProfileType string `json:"profile_type" schema:"profile_type"`
	}
	if err := httpx.Params(r, &params); err != nil {
		return err
	}
	typ := models.ProfileType(params.ProfileType)
	if !typ.Valid() {
		return httpx.Code(http.StatusBadRequest, "VALIDATION_ERROR", fmt.Errorf("unknown profile type: %q", params.ProfileType))
	}

	if _, err := models.NewProfiles(env.DB).Find(user.ID, typ); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.Code(http.StatusBadRequest, "PROFILE_NOT_FOUND", fmt.Errorf("profile of type %q not found", typ))
		}
		return httpx.Code(http.StatusBadRequest, "TOKEN_GENERATION_FAILED", err)
	}

	token, err := models.NewNFCTokens(env.DB).Issue(user.ID, typ, env.TokenTTL)
	if err != nil {
		return httpx.Code(http.StatusBadRequest, "TOKEN_GENERATION_FAILED", err)
	}
	return to.JSON(w, map[string]any{
		"token":        token.Token,
		"profile_type": token.ProfileType,
		"expires_at":   token.ExpiresAt.Format(time.RFC3339),
	})
}

// TokenShow validates a presented token and previews the profile it grants
// access to, without spending it. The only write is lazy expiry: a token
// found past its lifetime is deactivated on the spot.
func TokenShow(env *Env, w http.ResponseWriter, r *http.Request) error {
	tokens := models.NewNFCTokens(env.DB)
	token, err := tokens.FindActive(chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.Code(http.StatusBadRequest, "INVALID_TOKEN", errors.New("invalid or expired token"))
		}
		return httpx.Code(http.StatusBadRequest, "TOKEN_VALIDATION_FAILED", err)
	}
	if token.Expired(time.Now().UTC()) {
		if _, err := tokens.Deactivate(token); err != nil {
			return httpx.Code(http.StatusBadRequest, "TOKEN_VALIDATION_FAILED", err)
		}
		return httpx.Code(http.StatusBadRequest, "EXPIRED_TOKEN", errors.New("token has expired"))
	}

	profile, err := models.NewProfiles(env.DB).Find(token.OwnerID, token.ProfileType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// the owner deleted the profile after issuing the token
			return httpx.Code(http.StatusBadRequest, "PROFILE_NOT_FOUND", errors.New("associated profile not found"))
		}
		return httpx.Code(http.StatusBadRequest, "TOKEN_VALIDATION_FAILED", err)
	}
	return to.JSON(w, map[string]any{
		"profile": serialiseProfile(profile),
		"user_id": token.OwnerID,
	})
}

// ConnectionCreate redeems a presented token: it records a one-way
// connection from the caller to the token's owner and spends the token,
// whatever its remaining lifetime.
func ConnectionCreate(env *Env, w http.ResponseWriter, r *http.Request) error {
	user, err := env.Authenticate(r)
	if err != nil {
		return err
	}
	tokens := models.NewNFCTokens(env.DB)
	token, err := tokens.FindActive(chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.Code(http.StatusBadRequest, "INVALID_TOKEN", errors.New("invalid or expired token"))
		}
		return httpx.Code(http.StatusBadRequest, "CONNECTION_FAILED", err)
	}
	if user.ID == token.OwnerID {
		return httpx.Code(http.StatusBadRequest, "SELF_CONNECTION", errors.New("cannot connect with yourself"))
	}
	if token.Expired(time.Now().UTC()) {
		if _, err := tokens.Deactivate(token); err != nil {
			return httpx.Code(http.StatusBadRequest, "CONNECTION_FAILED", err)
		}
		return httpx.Code(http.StatusBadRequest, "EXPIRED_TOKEN", errors.New("token has expired"))
	}

	// one connection per user pair, whichever audience it was formed through
	exists, err := models.NewConnections(env.DB).Exists(user.ID, token.OwnerID)
	if err != nil {
		return httpx.Code(http.StatusBadRequest, "CONNECTION_FAILED", err)
	}
	if exists {
		return httpx.Code(http.StatusBadRequest, "CONNECTION_EXISTS", errors.New("connection already exists"))
	}

	var connection *models.Connection
	err = env.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		connection, err = models.NewConnections(tx).Create(user.ID, token.OwnerID, token.ProfileType)
		if err != nil {
			return err
		}
		// Spend the token last. If another redemption got there first the
		// conditional update reports zero rows and the connection rolls
		// back with the transaction.
		spent, err := models.NewNFCTokens(tx).Deactivate(token)
		if err != nil {
			return err
		}
		if !spent {
			return errTokenSpent
		}
		return nil
	})
	if errors.Is(err, errTokenSpent) {
		return httpx.Code(http.StatusBadRequest, "INVALID_TOKEN", errors.New("invalid or expired token"))
	}
	if err != nil {
		return httpx.Code(http.StatusBadRequest, "CONNECTION_FAILED", err)
	}

	// The profile is fetched for response convenience only; the connection
	// is already committed, so a missing profile is tolerated.
	var profile map[string]any
	if p, err := models.NewProfiles(env.DB).Find(token.OwnerID, token.ProfileType); err == nil {
		profile = serialiseProfile(p)
	}
	return to.JSON(w, map[string]any{
		"message":    "Connection created successfully",
		"connection": serialiseConnection(connection),
		"profile":    profile,
	})
}
