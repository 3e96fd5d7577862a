// Package profiles implements CRUD over a user's audience-scoped profiles:
// family, friends, work and acquaintances. The server treats a profile's
// attributes as an opaque bag; it only cares which audience they belong to.
package profiles

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/chtnnhfndn/contacts-backend/internal/algorithms"
	"github.com/chtnnhfndn/contacts-backend/internal/httpx"
	"github.com/chtnnhfndn/contacts-backend/internal/to"
	"github.com/chtnnhfndn/contacts-backend/models"
)

type Env struct {
	*models.Env
}

// Index lists every profile the caller maintains.
func Index(env *Env, w http.ResponseWriter, r *http.Request) error {
	user, err := env.Authenticate(r)
	if err != nil {
		return err
	}
	profiles, err := models.NewProfiles(env.DB).FindAll(user.ID)
	if err != nil {
		return err
	}
	return to.JSON(w, map[string]any{
		"profiles": algorithms.Map(profiles, func(p models.Profile) map[string]any {
			return serialiseProfile(&p)
		}),
	})
}

// Create stores a new profile for the audience named in the path. A user
// holds at most one profile per audience.
func Create(env *Env, w http.ResponseWriter, r *http.Request) error {
	user, err := env.Authenticate(r)
	if err != nil {
		return err
	}
	typ, err := profileType(r)
	if err != nil {
		return err
	}
	var params struct {
		Name  string         `json:"name" schema:"name"`
		Photo string         `json:"photo" schema:"photo"`
		Attrs map[string]any `json:"attrs" schema:"-"`
	}
	if err := httpx.Params(r, &params); err != nil {
		return err
	}
	if params.Name == "" {
		return httpx.Code(http.StatusBadRequest, "VALIDATION_ERROR", errors.New("name is required"))
	}

	repo := models.NewProfiles(env.DB)
	if _, err := repo.Find(user.ID, typ); err == nil {
		return httpx.Code(http.StatusConflict, "PROFILE_EXISTS", fmt.Errorf("%s profile already exists", typ))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return httpx.Code(http.StatusBadRequest, "PROFILE_CREATION_FAILED", err)
	}

	profile, err := repo.Create(user.ID, typ, params.Name, params.Photo, params.Attrs)
	if err != nil {
		return httpx.Code(http.StatusBadRequest, "PROFILE_CREATION_FAILED", err)
	}
	return to.JSONStatus(w, http.StatusCreated, serialiseProfile(profile))
}

// Update applies changes to the caller's profile for the audience named in
// the path. Fields left out of the request keep their stored values.
func Update(env *Env, w http.ResponseWriter, r *http.Request) error {
	user, err := env.Authenticate(r)
	if err != nil {
		return err
	}
	typ, err := profileType(r)
	if err != nil {
		return err
	}
	var params struct {
		Name  string         `json:"name" schema:"name"`
		Photo string         `json:"photo" schema:"photo"`
		Attrs map[string]any `json:"attrs" schema:"-"`
	}
	if err := httpx.Params(r, &params); err != nil {
		return err
	}

	profile, err := models.NewProfiles(env.DB).Update(user.ID, typ, params.Name, params.Photo, params.Attrs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.Code(http.StatusBadRequest, "PROFILE_NOT_FOUND", fmt.Errorf("profile of type %q not found", typ))
		}
		return httpx.Code(http.StatusBadRequest, "PROFILE_UPDATE_FAILED", err)
	}
	return to.JSON(w, serialiseProfile(profile))
}

// Show returns the caller's profile for the audience named in the path.
func Show(env *Env, w http.ResponseWriter, r *http.Request) error {
	user, err := env.Authenticate(r)
	if err != nil {
		return err
	}
	typ, err := profileType(r)
	if err != nil {
		return err
	}
	profile, err := models.NewProfiles(env.DB).Find(user.ID, typ)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.Code(http.StatusBadRequest, "PROFILE_NOT_FOUND", fmt.Errorf("profile of type %q not found", typ))
		}
		return err
	}
	return to.JSON(w, serialiseProfile(profile))
}

// Destroy removes the caller's profile for the audience named in the path.
// Sharing tokens already issued against it are left to die at validation.
func Destroy(env *Env, w http.ResponseWriter, r *http.Request) error {
	user, err := env.Authenticate(r)
	if err != nil {
		return err
	}
	typ, err := profileType(r)
	if err != nil {
		return err
	}
	removed, err := models.NewProfiles(env.DB).Delete(user.ID, typ)
	if err != nil {
		return err
	}
	if !removed {
		return httpx.Code(http.StatusBadRequest, "PROFILE_NOT_FOUND", fmt.Errorf("profile of type %q not found", typ))
	}
	return to.JSON(w, map[string]any{
		"message": "Profile deleted successfully",
	})
}

func profileType(r *http.Request) (models.ProfileType, error) {
	typ := models.ProfileType(chi.URLParam(r, "type"))
	if !typ.Valid() {
		return "", httpx.Code(http.StatusBadRequest, "VALIDATION_ERROR", fmt.Errorf("unknown profile type: %q", string(typ)))
	}
	return typ, nil
}

func serialiseProfile(p *models.Profile) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"user_id":    p.UserID,
		"type":       p.Type,
		"name":       p.Name,
		"photo":      p.Photo,
		"attrs":      p.Attrs,
		"created_at": p.CreatedAt.Format(time.RFC3339),
	}
}
