package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a measurement unit for ingredient quantities ("gram"/"g").
// Quantities recorded in different units are never merged; there is no
// unit conversion anywhere in the system.
type Unit struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
