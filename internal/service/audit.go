package service

import (
	"context"
	"fmt"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/repo"
	"go.uber.org/zap"
)

// AuditService persists the submission audit trail from settled order
// outcome events.
type AuditService struct {
	auditRepo repo.SubmissionRecordRepository
	logger    *zap.SugaredLogger
}

func NewAuditService(auditRepo repo.SubmissionRecordRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *AuditService) ProcessOrderOutcome(ctx context.Context, event domain.OrderOutcomeEvent) error {
	record := &domain.SubmissionRecord{
		SessionID:    event.SessionID,
		DraftID:      event.DraftID,
		EventType:    event.EventType,
		OrderType:    event.OrderType,
		TableID:      event.TableID,
		OrderID:      event.OrderID,
		Total:        event.Total,
		ErrorMessage: event.ErrorMessage,
		Timestamp:    event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, record); err != nil {
		s.logger.Errorw("failed to create submission record", "draft_id", event.DraftID, "error", err)
		return fmt.Errorf("failed to create submission record: %w", err)
	}

	s.logger.Infow("submission recorded", "session_id", event.SessionID, "draft_id", event.DraftID, "event_type", event.EventType)

	return nil
}

func (s *AuditService) GetSessionAudit(ctx context.Context, sessionID string, limit int) ([]domain.SubmissionRecord, error) {
	records, err := s.auditRepo.GetBySessionID(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get session audit: %w", err)
	}

	return records, nil
}
