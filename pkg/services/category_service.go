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

// CategoryService provides operations for managing ingredient categories.
type CategoryService interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, category *models.Category) error
	UpdateCategory(ctx context.Context, userID uuid.UUID, category *models.Category) error
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
	GetCategories(ctx context.Context, userID uuid.UUID) ([]*models.Category, error)
}

type categoryService struct {
	categories repositories.CategoryRepository
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories repositories.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		logger:     logger,
	}
}

var _ CategoryService = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID uuid.UUID, category *models.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", apperrors.ErrInvalidInput)
	}

	category.UserID = userID
	return s.categories.Create(ctx, category)
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID uuid.UUID, category *models.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", apperrors.ErrInvalidInput)
	}

	category.UserID = userID
	return s.categories.Update(ctx, category)
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	return s.categories.Delete(ctx, userID, categoryID)
}

func (s *categoryService) GetCategories(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	return s.categories.GetByUser(ctx, userID)
}
