package domain

import "time"

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeout  OrderType = "takeout"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeout, OrderTypeDelivery:
		return true
	}
	return false
}

// Replacement records that the customer declines one combo component and
// takes a catalog item instead. It is an annotation only: it never changes
// the computed price, and duplicates for the same component are allowed.
type Replacement struct {
	ID            string `json:"id"`
	FromComponent string `json:"from_component"`
	FromOption    string `json:"from_option"`
	ToItemID      string `json:"to_item_id"`
	ToItemName    string `json:"to_item_name"`
}

// LunchSelection is one combo in progress: the chosen protein plus one
// option (or nil) per selectable component, and any replacement annotations.
type LunchSelection struct {
	Protein      *ProteinOption   `json:"protein,omitempty"`
	Soup         *ComponentOption `json:"soup,omitempty"`
	Principle    *ComponentOption `json:"principle,omitempty"`
	Salad        *ComponentOption `json:"salad,omitempty"`
	Drink        *ComponentOption `json:"drink,omitempty"`
	Extra        *ComponentOption `json:"extra,omitempty"`
	Rice         *ComponentOption `json:"rice,omitempty"`
	Replacements []Replacement    `json:"replacements,omitempty"`
}

// Component returns the current choice for a named component slot.
func (s *LunchSelection) Component(name string) *ComponentOption {
	switch name {
	case ComponentSoup:
		return s.Soup
	case ComponentPrinciple:
		return s.Principle
	case ComponentSalad:
		return s.Salad
	case ComponentDrink:
		return s.Drink
	case ComponentExtra:
		return s.Extra
	case ComponentRice:
		return s.Rice
	}
	return nil
}

// SetComponent stores a choice for a named component slot. A nil option
// clears the slot.
func (s *LunchSelection) SetComponent(name string, option *ComponentOption) {
	switch name {
	case ComponentSoup:
		s.Soup = option
	case ComponentPrinciple:
		s.Principle = option
	case ComponentSalad:
		s.Salad = option
	case ComponentDrink:
		s.Drink = option
	case ComponentExtra:
		s.Extra = option
	case ComponentRice:
		s.Rice = option
	}
}

// Clone deep-copies the selection so stored drafts and the in-progress
// selection never alias each other.
func (s *LunchSelection) Clone() *LunchSelection {
	if s == nil {
		return nil
	}

	out := &LunchSelection{}
	if s.Protein != nil {
		p := *s.Protein
		out.Protein = &p
	}
	for _, name := range SelectableComponents {
		if opt := s.Component(name); opt != nil {
			c := *opt
			out.SetComponent(name, &c)
		}
	}
	if len(s.Replacements) > 0 {
		out.Replacements = make([]Replacement, len(s.Replacements))
		copy(out.Replacements, s.Replacements)
	}

	return out
}

// LooseItemLine is a catalog item on a draft with its ordered quantity.
// Quantity is always >= 1; dropping to zero removes the line.
type LooseItemLine struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// DraftOrder is one confirmed-but-unsubmitted unit of the table's pending
// order list. ID is a locally generated time-based token, not a backend
// identifier; it only exists so the UI can edit, duplicate and remove
// entries before submission.
type DraftOrder struct {
	ID          string          `json:"id"`
	Lunch       *LunchSelection `json:"lunch,omitempty"`
	Items       []LooseItemLine `json:"items,omitempty"`
	Total       float64         `json:"total"`
	Notes       string          `json:"notes,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	SubmitError string          `json:"submit_error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (d *DraftOrder) Clone() DraftOrder {
	out := *d
	out.Lunch = d.Lunch.Clone()
	if len(d.Items) > 0 {
		out.Items = make([]LooseItemLine, len(d.Items))
		copy(out.Items, d.Items)
	}
	return out
}

// CompositionSession is the full in-progress state of building one table's
// order list, from order-type selection through submission. It lives only
// for the duration of that interaction and is destroyed on full-success
// submission or explicit cancellation.
type CompositionSession struct {
	ID        string           `json:"id"`
	OrderType OrderType        `json:"order_type"`
	TableID   string           `json:"table_id,omitempty"`
	Snapshot  *CatalogSnapshot `json:"snapshot,omitempty"`
	Drafts    []DraftOrder     `json:"drafts"`

	// EditIndex points into Drafts while an existing entry is being
	// re-edited; nil means the current in-progress draft is a new one.
	EditIndex *int `json:"edit_index,omitempty"`

	Current      *LunchSelection `json:"current,omitempty"`
	CurrentItems []LooseItemLine `json:"current_items,omitempty"`
	CurrentNotes string          `json:"current_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// LineItem is one line of an order submission to the backend order API.
type LineItem struct {
	ItemID   string  `json:"item_id,omitempty"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Note     string  `json:"note,omitempty"`
}

// OrderResult is the backend's answer to one order submission.
type OrderResult struct {
	OrderID string `json:"order_id"`
	Message string `json:"message,omitempty"`
}
