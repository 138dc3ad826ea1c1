package service

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
)

type CategoryService struct {
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: logger}
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, categoryType *model.CategoryType, activeOnly bool) ([]model.Category, error) {
	categories, err := s.categories.List(ctx, categoryType, activeOnly)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, params model.CreateCategoryParams) (*model.Category, error) {
	if params.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	switch params.Type {
	case model.CategoryTypeIncome, model.CategoryTypeExpense, model.CategoryTypeBoth:
	default:
		return nil, apperrors.InvalidInput("type", "must be income, expense or both")
	}

	category, err := s.categories.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.log.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, params model.UpdateCategoryParams) (*model.Category, error) {
	category, err := s.categories.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	affected, err := s.categories.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Category")
	}
	return nil
}
