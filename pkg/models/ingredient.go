package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a purchasable food item. CategoryID is optional; items
// without a category fall into the "Uncategorized" bucket on shopping lists.
type Ingredient struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Name         string     `json:"name"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategoryName *string    `json:"category_name,omitempty"` // joined, read-only
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
