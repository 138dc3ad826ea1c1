package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/72tommy72/HRMate/internal/model"
)

type SettingsRepository interface {
	FindByCategory(ctx context.Context, category model.SettingsCategory) (*model.Settings, error)
	List(ctx context.Context) ([]model.Settings, error)
	Upsert(ctx context.Context, category model.SettingsCategory, settings json.RawMessage, updatedBy string) (*model.Settings, error)
}

type settingsRepo struct {
	db DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) FindByCategory(ctx context.Context, category model.SettingsCategory) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.GetContext(ctx, &settings, `SELECT * FROM settings WHERE category = $1`, category)
	return HandleNotFound(&settings, err)
}

func (r *settingsRepo) List(ctx context.Context) ([]model.Settings, error) {
	settings := []model.Settings{}
	err := r.db.SelectContext(ctx, &settings, `SELECT * FROM settings ORDER BY category`)
	return settings, err
}

func (r *settingsRepo) Upsert(ctx context.Context, category model.SettingsCategory, data json.RawMessage, updatedBy string) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.GetContext(ctx, &settings, `
		INSERT INTO settings (category, settings, created_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (category) DO UPDATE SET
			settings = EXCLUDED.settings,
			updated_by = $3,
			updated_at = $4
		RETURNING *
	`, category, data, updatedBy, time.Now())
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
