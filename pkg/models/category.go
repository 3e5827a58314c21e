package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups ingredients for shopping-list summaries ("produce",
// "dairy", "grain", ...). Names are unique per user.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
