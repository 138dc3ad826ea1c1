package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
)

type SettingsService struct {
	settings repository.SettingsRepository
	log      zerolog.Logger
}

func NewSettingsService(settings repository.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{settings: settings, log: logger}
}

func (s *SettingsService) GetSettings(ctx context.Context, category model.SettingsCategory) (*model.Settings, error) {
	if !model.ValidSettingsCategory(category) {
		return nil, apperrors.InvalidInput("category", "unknown settings category")
	}

	settings, err := s.settings.FindByCategory(ctx, category)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if settings == nil {
		return nil, apperrors.NotFound("Settings")
	}
	return settings, nil
}

func (s *SettingsService) ListSettings(ctx context.Context) ([]model.Settings, error) {
	settings, err := s.settings.List(ctx)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return settings, nil
}

func (s *SettingsService) UpsertSettings(ctx context.Context, category model.SettingsCategory, data json.RawMessage, updatedBy string) (*model.Settings, error) {
	if !model.ValidSettingsCategory(category) {
		return nil, apperrors.InvalidInput("category", "unknown settings category")
	}
	if !json.Valid(data) {
		return nil, apperrors.InvalidInput("settings", "must be a JSON object")
	}

	settings, err := s.settings.Upsert(ctx, category, data, updatedBy)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.log.Info().Str("category", string(category)).Str("updated_by", updatedBy).Msg("Settings updated")
	return settings, nil
}
