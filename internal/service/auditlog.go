package service

import (
	"context"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
)

type AuditLogService struct {
	logs repository.AuditLogRepository
}

func NewAuditLogService(logs repository.AuditLogRepository) *AuditLogService {
	return &AuditLogService{logs: logs}
}

func (s *AuditLogService) ListLogs(ctx context.Context, filter model.AuditLogFilter) ([]model.AuditLog, int64, error) {
	entries, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	total, err := s.logs.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	return entries, total, nil
}
