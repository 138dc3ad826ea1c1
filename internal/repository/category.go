package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context, categoryType *model.CategoryType, activeOnly bool) ([]model.Category, error)
	Create(ctx context.Context, params model.CreateCategoryParams) (*model.Category, error)
	Update(ctx context.Context, id string, params model.UpdateCategoryParams) (*model.Category, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.db.GetContext(ctx, &category, `SELECT * FROM categories WHERE id = $1`, id)
	return HandleNotFound(&category, err)
}

func (r *categoryRepo) List(ctx context.Context, categoryType *model.CategoryType, activeOnly bool) ([]model.Category, error) {
	query := `SELECT * FROM categories WHERE 1=1`
	args := []interface{}{}
	if categoryType != nil {
		args = append(args, *categoryType)
		query += ` AND (type = $1 OR type = 'both')`
	}
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY sort_order NULLS LAST, name`

	categories := []model.Category{}
	err := r.db.SelectContext(ctx, &categories, query, args...)
	return categories, err
}

func (r *categoryRepo) Create(ctx context.Context, params model.CreateCategoryParams) (*model.Category, error) {
	var category model.Category
	err := r.db.GetContext(ctx, &category, `
		INSERT INTO categories (
			name, name_en, type, description, color, parent_id,
			subcategories, budget_limit, sort_order, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *
	`, params.Name, params.NameEn, params.Type, params.Description,
		params.Color, params.ParentID, params.Subcategories, params.BudgetLimit,
		params.SortOrder, params.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(ctx context.Context, id string, params model.UpdateCategoryParams) (*model.Category, error) {
	var category model.Category
	err := r.db.GetContext(ctx, &category, `
		UPDATE categories SET
			name = COALESCE($2, name),
			name_en = COALESCE($3, name_en),
			description = COALESCE($4, description),
			color = COALESCE($5, color),
			subcategories = COALESCE($6, subcategories),
			budget_limit = COALESCE($7, budget_limit),
			is_active = COALESCE($8, is_active),
			sort_order = COALESCE($9, sort_order),
			updated_by = $10,
			updated_at = $11
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.NameEn, params.Description, params.Color,
		params.Subcategories, params.BudgetLimit, params.IsActive,
		params.SortOrder, params.UpdatedBy, time.Now())
	return HandleNotFound(&category, err)
}

func (r *categoryRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
