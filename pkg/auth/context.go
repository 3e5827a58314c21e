package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GetUserIDFromContext extracts the user ID from JWT claims in the context.
// Returns uuid.Nil if not authenticated or the subject is not a UUID.
// Use this when you can handle uuid.Nil gracefully.
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil || claims.Subject == "" {
		return uuid.Nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil
	}

	return userID
}

// RequireUserIDFromContext extracts the user ID from context and returns an
// error if not found. Use this when the operation needs an owner.
func RequireUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID := GetUserIDFromContext(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}
