package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
)

// Logger persists audit entries and mirrors each one to the structured log,
// so operators see the trail even when the database write fails.
type Logger struct {
	repo repository.AuditLogRepository
	log  zerolog.Logger
}

func NewLogger(repo repository.AuditLogRepository, logger zerolog.Logger) *Logger {
	return &Logger{repo: repo, log: logger}
}

// Record writes one audit entry. A failed persist is logged and swallowed:
// auditing must never fail the operation it describes.
func (l *Logger) Record(ctx context.Context, params model.CreateAuditLogParams) {
	if params.Level == "" {
		params.Level = "info"
	}
	if params.Result == "" {
		params.Result = model.LogResultSuccess
	}

	event := l.log.Info()
	if params.Result == model.LogResultFailure {
		event = l.log.Warn()
	}
	event = event.
		Str("action", params.Action).
		Str("category", params.Category).
		Str("result", string(params.Result))
	if params.UserID != nil {
		event = event.Str("user_id", *params.UserID)
	}
	if params.ResourceType != nil && params.ResourceID != nil {
		event = event.Str("resource", *params.ResourceType+"/"+*params.ResourceID)
	}
	if params.ErrorMessage != nil {
		event = event.Str("error", *params.ErrorMessage)
	}
	event.Msg("Audit")

	if _, err := l.repo.Create(ctx, params); err != nil {
		l.log.Warn().Err(err).Str("action", params.Action).Msg("Failed to persist audit entry")
	}
}
