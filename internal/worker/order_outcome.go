package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/queue"
	"github.com/casaverde/comanda/internal/service"
	"go.uber.org/zap"
)

type OrderOutcomeWorker struct {
	auditService *service.AuditService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewOrderOutcomeWorker(
	auditService *service.AuditService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderOutcomeWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderOutcomeWorker{
		auditService: auditService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *OrderOutcomeWorker) Start() error {
	w.logger.Info("starting order outcome worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderOutcome, w.handleMessage)
}

func (w *OrderOutcomeWorker) Stop() {
	w.logger.Info("stopping order outcome worker")
	w.cancel()
}

func (w *OrderOutcomeWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderOutcomeEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing order outcome event", "draft_id", event.DraftID, "event_type", event.EventType)

	if err := w.auditService.ProcessOrderOutcome(ctx, event); err != nil {
		w.logger.Errorw("failed to process order outcome event", "draft_id", event.DraftID, "error", err)
		return err
	}

	return nil
}
