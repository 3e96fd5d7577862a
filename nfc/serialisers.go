package nfc

import (
	"time"

	"github.com/chtnnhfndn/contacts-backend/models"
)

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

func serialiseConnection(c *models.Connection) map[string]any {
	return map[string]any{
		"id":                c.ID,
		"user_id":           c.UserID,
		"connected_user_id": c.ConnectedUserID,
		"connection_type":   c.ConnectionType,
		"created_at":        c.CreatedAt.Format(time.RFC3339),
	}
}
