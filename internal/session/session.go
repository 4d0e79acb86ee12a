// Package session owns the composition sessions: the in-progress draft being
// edited and the accumulated list of confirmed-but-unsubmitted drafts for one
// table's order-building interaction.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound  = errors.New("composition session not found")
	ErrInvalidOrderType = errors.New("invalid order type")
	ErrNoSnapshot       = errors.New("no catalog snapshot attached")
	ErrUnknownComponent = errors.New("unknown lunch component")
	ErrUnknownOption    = errors.New("option not in today's menu")
	ErrUnknownProtein   = errors.New("protein not in today's menu")
	ErrUnknownItem      = errors.New("item not in catalog")
	ErrInvalidIndex     = errors.New("draft index out of range")
)

// Manager holds every live composition session keyed by id. All mutation
// goes through Manager methods under one lock; handlers and the submission
// coordinator never touch a session struct directly.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*domain.CompositionSession
	logger   *zap.SugaredLogger
}

func NewManager(logger *zap.SugaredLogger) *Manager {
	return &Manager{
		sessions: make(map[string]*domain.CompositionSession),
		logger:   logger,
	}
}

// Create opens a session for one table/order-type. The table may be assigned
// later; dine-in ordering is only blocked at validation and confirm time.
func (m *Manager) Create(orderType domain.OrderType, tableID string) (*domain.CompositionSession, error) {
	if !orderType.Valid() {
		return nil, ErrInvalidOrderType
	}

	s := &domain.CompositionSession{
		ID:        uuid.NewString(),
		OrderType: orderType,
		TableID:   tableID,
		Drafts:    []domain.DraftOrder{},
		Current:   &domain.LunchSelection{},
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Infow("composition session created", "session_id", s.ID, "order_type", orderType, "table_id", tableID)

	return cloneSession(s), nil
}

// Get returns a deep copy; callers can render or inspect it freely without
// holding the manager lock.
func (m *Manager) Get(id string) (*domain.CompositionSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return cloneSession(s), nil
}

// AttachSnapshot binds the catalog snapshot for the rest of the session and
// runs the reconciliation step that fills single-option components.
func (m *Manager) AttachSnapshot(id string, snapshot *domain.CatalogSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	s.Snapshot = snapshot
	reconcile(s.Current, snapshot)

	return nil
}

func (m *Manager) SetTable(id, tableID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	s.TableID = tableID

	return nil
}

// Destroy discards a session, either on explicit cancellation or after a
// fully successful submission.
func (m *Manager) Destroy(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}

	delete(m.sessions, id)
	m.logger.Infow("composition session destroyed", "session_id", id)

	return nil
}

func cloneSession(s *domain.CompositionSession) *domain.CompositionSession {
	out := *s

	out.Drafts = make([]domain.DraftOrder, len(s.Drafts))
	for i := range s.Drafts {
		out.Drafts[i] = s.Drafts[i].Clone()
	}

	if s.EditIndex != nil {
		idx := *s.EditIndex
		out.EditIndex = &idx
	}

	out.Current = s.Current.Clone()
	if len(s.CurrentItems) > 0 {
		out.CurrentItems = make([]domain.LooseItemLine, len(s.CurrentItems))
		copy(out.CurrentItems, s.CurrentItems)
	}

	// the snapshot is immutable for the session's lifetime, sharing is fine
	return &out
}
