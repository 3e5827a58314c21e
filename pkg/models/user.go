package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an account provisioned by the external auth service.
// Stored locally only for foreign-key integrity on owned rows.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
