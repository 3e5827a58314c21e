package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/logging"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/repositories"
)

// ShoppingListService aggregates a week's ingredient usage into a shopping
// list and serializes it for download.
type ShoppingListService interface {
	// ShoppingList aggregates the week starting at weekStart. A fetch
	// failure aborts the request; no partial list is ever returned.
	ShoppingList(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.ShoppingList, error)

	// Export re-runs the aggregation for the same week and serializes the
	// result in the requested format.
	Export(ctx context.Context, userID uuid.UUID, weekStart time.Time, format string) (*Export, error)
}

type shoppingListService struct {
	mealPlans repositories.MealPlanRepository
	logger    *zap.Logger
}

// NewShoppingListService creates a new ShoppingListService.
func NewShoppingListService(mealPlans repositories.MealPlanRepository, logger *zap.Logger) ShoppingListService {
	return &shoppingListService{
		mealPlans: mealPlans,
		logger:    logger,
	}
}

var _ ShoppingListService = (*shoppingListService)(nil)

func (s *shoppingListService) ShoppingList(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.ShoppingList, error) {
	weekEnd := WeekEnd(weekStart)

	rows, err := s.mealPlans.FetchWeeklyIngredientUsageRows(ctx, userID, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("Failed to fetch weekly ingredient usage rows",
			zap.String("user_id", userID.String()),
			zap.String("week_start", DateKey(weekStart)),
			zap.String("week_end", DateKey(weekEnd)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("failed to fetch weekly ingredient usage: %w", err)
	}

	return AggregateShoppingList(rows, weekStart, weekEnd), nil
}

func (s *shoppingListService) Export(ctx context.Context, userID uuid.UUID, weekStart time.Time, format string) (*Export, error) {
	list, err := s.ShoppingList(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	return FormatShoppingList(list, format)
}
