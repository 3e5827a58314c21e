package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/apperrors"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/repositories"
)

// MealPlanService provides operations for managing meal slots and their items.
type MealPlanService interface {
	CreateMealPlan(ctx context.Context, userID uuid.UUID, plan *models.MealPlan) error
	DeleteMealPlan(ctx context.Context, userID, planID uuid.UUID) error
	GetMealPlan(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error)
	GetMealPlans(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error)
	AddMealItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error
	UpdateMealItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error
	DeleteMealItem(ctx context.Context, userID, planID, itemID uuid.UUID) error
}

type mealPlanService struct {
	mealPlans repositories.MealPlanRepository
	logger    *zap.Logger
}

// NewMealPlanService creates a new MealPlanService.
func NewMealPlanService(mealPlans repositories.MealPlanRepository, logger *zap.Logger) MealPlanService {
	return &mealPlanService{
		mealPlans: mealPlans,
		logger:    logger,
	}
}

var _ MealPlanService = (*mealPlanService)(nil)

func (s *mealPlanService) CreateMealPlan(ctx context.Context, userID uuid.UUID, plan *models.MealPlan) error {
	if !models.IsKnownMealLabel(plan.MealLabel) {
		return fmt.Errorf("%w: unknown meal label %q", apperrors.ErrInvalidInput, plan.MealLabel)
	}
	if plan.PlanDate.IsZero() {
		return fmt.Errorf("%w: plan date is required", apperrors.ErrInvalidInput)
	}

	plan.UserID = userID
	return s.mealPlans.Create(ctx, plan)
}

func (s *mealPlanService) DeleteMealPlan(ctx context.Context, userID, planID uuid.UUID) error {
	return s.mealPlans.Delete(ctx, userID, planID)
}

func (s *mealPlanService) GetMealPlan(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error) {
	return s.mealPlans.GetByID(ctx, userID, planID)
}

func (s *mealPlanService) GetMealPlans(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error) {
	return s.mealPlans.GetByUser(ctx, userID)
}

func validateMealItem(item *models.MealItem) error {
	if item.DishID == uuid.Nil {
		return fmt.Errorf("%w: dish is required", apperrors.ErrInvalidInput)
	}
	if item.Servings <= 0 {
		return fmt.Errorf("%w: servings must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}

func (s *mealPlanService) AddMealItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error {
	if err := validateMealItem(item); err != nil {
		return err
	}
	return s.mealPlans.AddItem(ctx, userID, item)
}

func (s *mealPlanService) UpdateMealItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error {
	if item.Servings <= 0 {
		return fmt.Errorf("%w: servings must be positive", apperrors.ErrInvalidInput)
	}
	return s.mealPlans.UpdateItem(ctx, userID, item)
}

func (s *mealPlanService) DeleteMealItem(ctx context.Context, userID, planID, itemID uuid.UUID) error {
	return s.mealPlans.DeleteItem(ctx, userID, planID, itemID)
}
