// Package submit fans the finalized draft list out as independent order
// submissions. Drafts are separate business transactions: one failing draft
// never aborts its siblings and is never retried automatically.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/pricing"
	"github.com/casaverde/comanda/internal/queue"
	"github.com/casaverde/comanda/internal/session"
	"go.uber.org/zap"
)

var (
	ErrNoDrafts      = errors.New("no drafts to submit")
	ErrTableRequired = errors.New("a table is required for dine-in orders")
)

const fallbackMessage = "order could not be submitted"

// OrderAPI is the external order service, one call per draft.
type OrderAPI interface {
	Submit(ctx context.Context, orderType domain.OrderType, tableID string, items []domain.LineItem) (domain.OrderResult, error)
}

// DraftResult is the settled outcome of one draft.
type DraftResult struct {
	DraftID   string  `json:"draft_id"`
	Submitted bool    `json:"submitted"`
	OrderID   string  `json:"order_id,omitempty"`
	Total     float64 `json:"total"`
	Error     string  `json:"error,omitempty"`
}

// Report aggregates one confirmation round. Total sums only the drafts that
// the backend accepted.
type Report struct {
	Submitted int           `json:"submitted"`
	Failed    int           `json:"failed"`
	Total     float64       `json:"total"`
	Cleared   bool          `json:"cleared"`
	Results   []DraftResult `json:"results"`
}

type Coordinator struct {
	sessions *session.Manager
	orders   OrderAPI
	broker   queue.Broker
	logger   *zap.SugaredLogger
}

func NewCoordinator(
	sessions *session.Manager,
	orders OrderAPI,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *Coordinator {
	return &Coordinator{
		sessions: sessions,
		orders:   orders,
		broker:   broker,
		logger:   logger,
	}
}

// Confirm submits every pending draft of a session concurrently and waits
// for all of them to settle before deciding anything. On full success the
// session is destroyed; on partial failure the accepted drafts are removed
// and the failing ones stay in the list with their error attached.
func (c *Coordinator) Confirm(ctx context.Context, sessionID string) (*Report, error) {
	sess, err := c.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if len(sess.Drafts) == 0 {
		return nil, ErrNoDrafts
	}
	if sess.OrderType == domain.OrderTypeDineIn && sess.TableID == "" {
		return nil, ErrTableRequired
	}

	results := make([]DraftResult, len(sess.Drafts))

	var wg sync.WaitGroup
	for i, draft := range sess.Drafts {
		results[i] = DraftResult{DraftID: draft.ID, Total: draft.Total}

		items := buildLineItems(sess, draft)
		if len(items) == 0 {
			// never send an empty order; surface a local error instead
			results[i].Error = "draft produces no line items"
			continue
		}

		wg.Add(1)
		go func(i int, items []domain.LineItem) {
			defer wg.Done()

			res, err := c.orders.Submit(ctx, sess.OrderType, sess.TableID, items)
			if err != nil {
				message := err.Error()
				if message == "" {
					message = fallbackMessage
				}
				results[i].Error = message
				return
			}

			results[i].Submitted = true
			results[i].OrderID = res.OrderID
		}(i, items)
	}

	wg.Wait()

	report := &Report{Results: results}
	for i := range results {
		c.publishOutcome(ctx, sess, results[i])

		if results[i].Submitted {
			report.Submitted++
			report.Total += results[i].Total
			if err := c.sessions.RemoveSubmittedDraft(sessionID, results[i].DraftID); err != nil {
				c.logger.Errorw("failed to clear submitted draft", "session_id", sessionID, "draft_id", results[i].DraftID, "error", err)
			}
		} else {
			report.Failed++
			if err := c.sessions.MarkDraftFailed(sessionID, results[i].DraftID, results[i].Error); err != nil {
				c.logger.Errorw("failed to mark draft", "session_id", sessionID, "draft_id", results[i].DraftID, "error", err)
			}
		}
	}

	if report.Failed == 0 {
		if err := c.sessions.Destroy(sessionID); err != nil {
			c.logger.Errorw("failed to destroy session after submission", "session_id", sessionID, "error", err)
		} else {
			report.Cleared = true
		}
	}

	c.logger.Infow("submission settled",
		"session_id", sessionID,
		"submitted", report.Submitted,
		"failed", report.Failed,
		"total", report.Total,
	)

	return report, nil
}

// buildLineItems turns a draft into the backend's line item list: one line
// for the protein carrying the combo summary as its note, then one line per
// loose item.
func buildLineItems(sess *domain.CompositionSession, draft domain.DraftOrder) []domain.LineItem {
	var items []domain.LineItem

	if draft.Lunch != nil && draft.Lunch.Protein != nil {
		var basePrice float64
		if sess.Snapshot != nil {
			basePrice = sess.Snapshot.BasePrice
		}

		items = append(items, domain.LineItem{
			ItemID:   draft.Lunch.Protein.ID,
			Name:     draft.Lunch.Protein.Name,
			Quantity: 1,
			Price:    pricing.LunchTotal(basePrice, draft.Lunch.Protein),
			Note:     draft.Summary,
		})
	}

	for _, line := range draft.Items {
		items = append(items, domain.LineItem{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}

	// without a combo the free text would be lost, carry it on the first line
	if len(items) > 0 && items[0].Note == "" && draft.Notes != "" {
		items[0].Note = draft.Notes
	}

	return items
}

func (c *Coordinator) publishOutcome(ctx context.Context, sess *domain.CompositionSession, result DraftResult) {
	event := domain.OrderOutcomeEvent{
		EventType:    domain.EventOrderSubmitted,
		SessionID:    sess.ID,
		DraftID:      result.DraftID,
		OrderType:    sess.OrderType,
		TableID:      sess.TableID,
		OrderID:      result.OrderID,
		Total:        result.Total,
		ErrorMessage: result.Error,
		Timestamp:    time.Now(),
	}
	if !result.Submitted {
		event.EventType = domain.EventOrderFailed
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		c.logger.Errorw("failed to marshal outcome event", "draft_id", result.DraftID, "error", err)
		return
	}

	if err := c.broker.Publish(ctx, queue.QueueOrderOutcome, eventBytes); err != nil {
		c.logger.Errorw("failed to publish outcome event", "draft_id", result.DraftID, "error", err)
	}
}
