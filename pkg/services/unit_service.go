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

// UnitService provides operations for managing measurement units.
type UnitService interface {
	CreateUnit(ctx context.Context, userID uuid.UUID, unit *models.Unit) error
	UpdateUnit(ctx context.Context, userID uuid.UUID, unit *models.Unit) error
	DeleteUnit(ctx context.Context, userID, unitID uuid.UUID) error
	GetUnits(ctx context.Context, userID uuid.UUID) ([]*models.Unit, error)
}

type unitService struct {
	units  repositories.UnitRepository
	logger *zap.Logger
}

// NewUnitService creates a new UnitService.
func NewUnitService(units repositories.UnitRepository, logger *zap.Logger) UnitService {
	return &unitService{
		units:  units,
		logger: logger,
	}
}

var _ UnitService = (*unitService)(nil)

func validateUnit(unit *models.Unit) error {
	unit.Name = strings.TrimSpace(unit.Name)
	unit.Abbreviation = strings.TrimSpace(unit.Abbreviation)
	if unit.Name == "" {
		return fmt.Errorf("%w: unit name is required", apperrors.ErrInvalidInput)
	}
	if unit.Abbreviation == "" {
		return fmt.Errorf("%w: unit abbreviation is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func (s *unitService) CreateUnit(ctx context.Context, userID uuid.UUID, unit *models.Unit) error {
	if err := validateUnit(unit); err != nil {
		return err
	}

	unit.UserID = userID
	return s.units.Create(ctx, unit)
}

func (s *unitService) UpdateUnit(ctx context.Context, userID uuid.UUID, unit *models.Unit) error {
	if err := validateUnit(unit); err != nil {
		return err
	}

	unit.UserID = userID
	return s.units.Update(ctx, unit)
}

func (s *unitService) DeleteUnit(ctx context.Context, userID, unitID uuid.UUID) error {
	return s.units.Delete(ctx, userID, unitID)
}

func (s *unitService) GetUnits(ctx context.Context, userID uuid.UUID) ([]*models.Unit, error) {
	return s.units.GetByUser(ctx, userID)
}
