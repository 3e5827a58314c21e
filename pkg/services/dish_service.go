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

// DishService provides operations for managing dishes and their ingredient lines.
type DishService interface {
	CreateDish(ctx context.Context, userID uuid.UUID, dish *models.Dish) error
	UpdateDish(ctx context.Context, userID uuid.UUID, dish *models.Dish) error
	DeleteDish(ctx context.Context, userID, dishID uuid.UUID) error
	GetDishes(ctx context.Context, userID uuid.UUID, search string) ([]*models.Dish, error)
	GetDish(ctx context.Context, userID, dishID uuid.UUID) (*models.Dish, error)
}

type dishService struct {
	dishes repositories.DishRepository
	logger *zap.Logger
}

// NewDishService creates a new DishService.
func NewDishService(dishes repositories.DishRepository, logger *zap.Logger) DishService {
	return &dishService{
		dishes: dishes,
		logger: logger,
	}
}

var _ DishService = (*dishService)(nil)

func validateDish(dish *models.Dish) error {
	dish.Name = strings.TrimSpace(dish.Name)
	if dish.Name == "" {
		return fmt.Errorf("%w: dish name is required", apperrors.ErrInvalidInput)
	}

	for i := range dish.Ingredients {
		line := &dish.Ingredients[i]
		if line.IngredientID == uuid.Nil {
			return fmt.Errorf("%w: ingredient is required on every line", apperrors.ErrInvalidInput)
		}
		if line.UnitID == uuid.Nil {
			return fmt.Errorf("%w: unit is required on every line", apperrors.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidInput)
		}
	}

	return nil
}

func (s *dishService) CreateDish(ctx context.Context, userID uuid.UUID, dish *models.Dish) error {
	if err := validateDish(dish); err != nil {
		return err
	}

	dish.UserID = userID
	return s.dishes.Create(ctx, dish)
}

func (s *dishService) UpdateDish(ctx context.Context, userID uuid.UUID, dish *models.Dish) error {
	if err := validateDish(dish); err != nil {
		return err
	}

	dish.UserID = userID
	return s.dishes.Update(ctx, dish)
}

func (s *dishService) DeleteDish(ctx context.Context, userID, dishID uuid.UUID) error {
	return s.dishes.Delete(ctx, userID, dishID)
}

func (s *dishService) GetDishes(ctx context.Context, userID uuid.UUID, search string) ([]*models.Dish, error) {
	return s.dishes.GetByUser(ctx, userID, strings.TrimSpace(search))
}

func (s *dishService) GetDish(ctx context.Context, userID, dishID uuid.UUID) (*models.Dish, error) {
	return s.dishes.GetByID(ctx, userID, dishID)
}
