package session

import (
	"github.com/casaverde/comanda/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetProtein chooses the combo protein from the snapshot. An empty id clears
// the choice.
func (m *Manager) SetProtein(id, proteinID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	if proteinID == "" {
		s.Current.Protein = nil
		return nil
	}

	if s.Snapshot == nil {
		return ErrNoSnapshot
	}

	protein, ok := s.Snapshot.Protein(proteinID)
	if !ok {
		return ErrUnknownProtein
	}

	s.Current.Protein = &protein

	return nil
}

// SetComponent chooses one option for a component slot. An empty option id
// clears the slot.
func (m *Manager) SetComponent(id, component, optionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	if !selectableComponent(component) {
		return ErrUnknownComponent
	}

	if optionID == "" {
		s.Current.SetComponent(component, nil)
		return nil
	}

	if s.Snapshot == nil {
		return ErrNoSnapshot
	}

	for _, opt := range s.Snapshot.Options(component) {
		if opt.ID == optionID {
			chosen := opt
			s.Current.SetComponent(component, &chosen)
			return nil
		}
	}

	return ErrUnknownOption
}

// AddItem puts a catalog item on the in-progress draft, merging quantities
// when the item is already present.
func (m *Manager) AddItem(id, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.Snapshot == nil {
		return ErrNoSnapshot
	}

	item, ok := s.Snapshot.Item(itemID)
	if !ok {
		return ErrUnknownItem
	}

	if quantity < 1 {
		quantity = 1
	}

	for i := range s.CurrentItems {
		if s.CurrentItems[i].ItemID == itemID {
			s.CurrentItems[i].Quantity += quantity
			return nil
		}
	}

	s.CurrentItems = append(s.CurrentItems, domain.LooseItemLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: quantity,
	})

	return nil
}

// SetItemQuantity overwrites a line's quantity; zero or less removes the
// line entirely.
func (m *Manager) SetItemQuantity(id, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	for i := range s.CurrentItems {
		if s.CurrentItems[i].ItemID != itemID {
			continue
		}

		if quantity <= 0 {
			s.CurrentItems = append(s.CurrentItems[:i], s.CurrentItems[i+1:]...)
		} else {
			s.CurrentItems[i].Quantity = quantity
		}
		return nil
	}

	return ErrUnknownItem
}

func (m *Manager) SetNotes(id, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	s.CurrentNotes = notes

	return nil
}

// AddReplacement records a substitution request on the in-progress combo.
// Replacement content is deliberately not validated: any catalog item may
// stand in for any named component and duplicates are allowed. It is an
// annotation for the kitchen, not a state invariant.
func (m *Manager) AddReplacement(id, fromComponent, fromOption, toItemID string) (domain.Replacement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.Replacement{}, ErrSessionNotFound
	}

	toItemName := toItemID
	if s.Snapshot != nil {
		if item, found := s.Snapshot.Item(toItemID); found {
			toItemName = item.Name
		}
	}

	r := domain.Replacement{
		ID:            primitive.NewObjectID().Hex(),
		FromComponent: fromComponent,
		FromOption:    fromOption,
		ToItemID:      toItemID,
		ToItemName:    toItemName,
	}

	s.Current.Replacements = append(s.Current.Replacements, r)

	m.logger.Infow("replacement recorded", "session_id", id, "from", fromComponent, "to", toItemID)

	return r, nil
}

func (m *Manager) RemoveReplacement(id, replacementID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	for i, r := range s.Current.Replacements {
		if r.ID == replacementID {
			s.Current.Replacements = append(s.Current.Replacements[:i], s.Current.Replacements[i+1:]...)
			return nil
		}
	}

	return nil
}

func selectableComponent(name string) bool {
	for _, c := range domain.SelectableComponents {
		if c == name {
			return true
		}
	}
	return false
}
