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

// PlannerService produces the nested weekly calendar view.
type PlannerService interface {
	// WeeklyCalendar builds the calendar for the 7-day week starting at
	// weekStart. A fetch failure aborts the request; no partial calendar
	// is ever returned.
	WeeklyCalendar(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.WeeklyCalendar, error)
}

type plannerService struct {
	mealPlans repositories.MealPlanRepository
	logger    *zap.Logger
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(mealPlans repositories.MealPlanRepository, logger *zap.Logger) PlannerService {
	return &plannerService{
		mealPlans: mealPlans,
		logger:    logger,
	}
}

var _ PlannerService = (*plannerService)(nil)

func (s *plannerService) WeeklyCalendar(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.WeeklyCalendar, error) {
	weekEnd := WeekEnd(weekStart)

	rows, err := s.mealPlans.FetchWeeklyMealPlanRows(ctx, userID, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("Failed to fetch weekly meal plan rows",
			zap.String("user_id", userID.String()),
			zap.String("week_start", DateKey(weekStart)),
			zap.String("week_end", DateKey(weekEnd)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("failed to fetch weekly meal plan: %w", err)
	}

	return BuildWeeklyCalendar(rows, weekStart), nil
}
