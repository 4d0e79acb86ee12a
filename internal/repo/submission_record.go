package repo

import (
	"context"

	"github.com/casaverde/comanda/internal/domain"
)

type SubmissionRecordRepository interface {
	Create(ctx context.Context, record *domain.SubmissionRecord) error
	GetBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.SubmissionRecord, error)
}
