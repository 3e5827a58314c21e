package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/apperrors"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/repositories"
)

// IngredientService provides operations for managing ingredients.
type IngredientService interface {
	CreateIngredient(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) error
	UpdateIngredient(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) error
	DeleteIngredient(ctx context.Context, userID, ingredientID uuid.UUID) error
	GetIngredients(ctx context.Context, userID uuid.UUID, search string) ([]*models.Ingredient, error)
	GetIngredient(ctx context.Context, userID, ingredientID uuid.UUID) (*models.Ingredient, error)
}

type ingredientService struct {
	ingredients repositories.IngredientRepository
	logger      *zap.Logger
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(ingredients repositories.IngredientRepository, logger *zap.Logger) IngredientService {
	return &ingredientService{
		ingredients: ingredients,
		logger:      logger,
	}
}

var _ IngredientService = (*ingredientService)(nil)

func (s *ingredientService) CreateIngredient(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) error {
	ingredient.Name = strings.TrimSpace(ingredient.Name)
	if ingredient.Name == "" {
		return fmt.Errorf("%w: ingredient name is required", apperrors.ErrInvalidInput)
	}

	ingredient.UserID = userID
	return s.ingredients.Create(ctx, ingredient)
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) error {
	ingredient.Name = strings.TrimSpace(ingredient.Name)
	if ingredient.Name == "" {
		return fmt.Errorf("%w: ingredient name is required", apperrors.ErrInvalidInput)
	}

	ingredient.UserID = userID
	return s.ingredients.Update(ctx, ingredient)
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, userID, ingredientID uuid.UUID) error {
	return s.ingredients.Delete(ctx, userID, ingredientID)
}

func (s *ingredientService) GetIngredients(ctx context.Context, userID uuid.UUID, search string) ([]*models.Ingredient, error) {
	return s.ingredients.GetByUser(ctx, userID, strings.TrimSpace(search))
}

func (s *ingredientService) GetIngredient(ctx context.Context, userID, ingredientID uuid.UUID) (*models.Ingredient, error) {
	return s.ingredients.GetByID(ctx, userID, ingredientID)
}
