package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/pricing"
	"github.com/casaverde/comanda/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddOrUpdateDraft finalizes the in-progress draft. When validation fails the
// errors are returned and nothing is mutated; otherwise the draft is priced,
// summarized and appended (or, in edit mode, replaces the entry it came
// from), and the in-progress selection is reset for the next draft.
func (m *Manager) AddOrUpdateDraft(id string) (*domain.DraftOrder, []validation.ValidationError, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	errs := validation.ValidateDraft(s.Current, s.CurrentItems, s.Snapshot, s.OrderType, s.TableID)
	if len(errs) > 0 {
		return nil, errs, nil
	}

	var basePrice float64
	if s.Snapshot != nil {
		basePrice = s.Snapshot.BasePrice
	}

	var lunch *domain.LunchSelection
	if s.Current != nil && s.Current.Protein != nil {
		lunch = s.Current.Clone()
	}

	draft := domain.DraftOrder{
		ID:        primitive.NewObjectID().Hex(),
		Lunch:     lunch,
		Total:     pricing.DraftTotal(basePrice, lunch, s.CurrentItems),
		Notes:     s.CurrentNotes,
		Summary:   composeSummary(lunch, s.CurrentNotes),
		CreatedAt: time.Now(),
	}
	if len(s.CurrentItems) > 0 {
		draft.Items = make([]domain.LooseItemLine, len(s.CurrentItems))
		copy(draft.Items, s.CurrentItems)
	}

	if s.EditIndex != nil {
		idx := *s.EditIndex
		if idx < 0 || idx >= len(s.Drafts) {
			return nil, nil, ErrInvalidIndex
		}
		// replace in place, keeping the entry's identity
		draft.ID = s.Drafts[idx].ID
		draft.CreatedAt = s.Drafts[idx].CreatedAt
		s.Drafts[idx] = draft
		m.logger.Infow("draft updated", "session_id", id, "draft_id", draft.ID, "total", draft.Total)
	} else {
		s.Drafts = append(s.Drafts, draft)
		m.logger.Infow("draft added", "session_id", id, "draft_id", draft.ID, "total", draft.Total)
	}

	m.resetCurrent(s)

	out := draft.Clone()
	return &out, nil, nil
}

// EditDraft copies a stored draft back into the in-progress selection. The
// entry stays in the list until AddOrUpdateDraft replaces it.
func (m *Manager) EditDraft(id string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if index < 0 || index >= len(s.Drafts) {
		return ErrInvalidIndex
	}

	draft := s.Drafts[index]

	if draft.Lunch != nil {
		s.Current = draft.Lunch.Clone()
	} else {
		s.Current = &domain.LunchSelection{}
		reconcile(s.Current, s.Snapshot)
	}

	s.CurrentItems = nil
	if len(draft.Items) > 0 {
		s.CurrentItems = make([]domain.LooseItemLine, len(draft.Items))
		copy(s.CurrentItems, draft.Items)
	}
	s.CurrentNotes = draft.Notes
	s.EditIndex = &index

	return nil
}

// RemoveDraft deletes an entry. Removing the entry currently under edit also
// resets the in-progress selection.
func (m *Manager) RemoveDraft(id string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if index < 0 || index >= len(s.Drafts) {
		return ErrInvalidIndex
	}

	wasEditing := s.EditIndex != nil && *s.EditIndex == index
	removeAt(s, index)
	if wasEditing {
		m.resetCurrent(s)
	}

	return nil
}

// DuplicateDraft appends a deep copy of an entry with a fresh id and
// timestamp; the original is untouched.
func (m *Manager) DuplicateDraft(id string, index int) (*domain.DraftOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if index < 0 || index >= len(s.Drafts) {
		return nil, ErrInvalidIndex
	}

	dup := s.Drafts[index].Clone()
	dup.ID = primitive.NewObjectID().Hex()
	dup.CreatedAt = time.Now()
	dup.SubmitError = ""

	s.Drafts = append(s.Drafts, dup)

	out := dup.Clone()
	return &out, nil
}

// Total is the summed total of all pending drafts.
func (m *Manager) Total(id string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return 0, ErrSessionNotFound
	}

	return pricing.SessionTotal(s.Drafts), nil
}

// MarkDraftFailed attaches a submission error to a draft so it stays in the
// list for retry or editing.
func (m *Manager) MarkDraftFailed(id, draftID, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	for i := range s.Drafts {
		if s.Drafts[i].ID == draftID {
			s.Drafts[i].SubmitError = message
			return nil
		}
	}

	return ErrInvalidIndex
}

// RemoveSubmittedDraft drops a draft that the backend accepted.
func (m *Manager) RemoveSubmittedDraft(id, draftID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	for i := range s.Drafts {
		if s.Drafts[i].ID != draftID {
			continue
		}

		removeAt(s, i)
		return nil
	}

	return nil
}

func removeAt(s *domain.CompositionSession, index int) {
	s.Drafts = append(s.Drafts[:index], s.Drafts[index+1:]...)

	if s.EditIndex != nil {
		switch {
		case *s.EditIndex == index:
			s.EditIndex = nil
		case *s.EditIndex > index:
			idx := *s.EditIndex - 1
			s.EditIndex = &idx
		}
	}
}

func (m *Manager) resetCurrent(s *domain.CompositionSession) {
	s.Current = &domain.LunchSelection{}
	s.CurrentItems = nil
	s.CurrentNotes = ""
	s.EditIndex = nil
	reconcile(s.Current, s.Snapshot)
}

// composeSummary serializes a combo into the human-readable note that
// travels with the protein line item: chosen component names, replacement
// annotations, then free text.
func composeSummary(lunch *domain.LunchSelection, notes string) string {
	var parts []string

	if lunch != nil {
		for _, component := range domain.SelectableComponents {
			if opt := lunch.Component(component); opt != nil {
				parts = append(parts, fmt.Sprintf("%s: %s", component, opt.Name))
			}
		}
		for _, r := range lunch.Replacements {
			parts = append(parts, fmt.Sprintf("no %s (%s), instead: %s", r.FromComponent, r.FromOption, r.ToItemName))
		}
	}

	if notes != "" {
		parts = append(parts, notes)
	}

	return strings.Join(parts, "; ")
}
