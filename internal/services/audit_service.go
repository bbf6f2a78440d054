package services

import (
	"context"

	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/internal/repositories"
)

// AuditService exposes the draw audit trail to the console
type AuditService interface {
	ListEvents(ctx context.Context, page, limit int) ([]*models.AuditEvent, int64, error)
	EventsForDate(ctx context.Context, drawDate string) ([]*models.AuditEvent, error)
}

type auditService struct {
	auditRepo repositories.AuditEventRepository
}

// NewAuditService creates a new AuditService implementation
func NewAuditService(auditRepo repositories.AuditEventRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) ListEvents(ctx context.Context, page, limit int) ([]*models.AuditEvent, int64, error) {
	events, err := s.auditRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.auditRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (s *auditService) EventsForDate(ctx context.Context, drawDate string) ([]*models.AuditEvent, error) {
	return s.auditRepo.FindByDrawDate(ctx, drawDate)
}
