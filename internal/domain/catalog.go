package domain

// Lunch combo component names. These are the slots a customer fills when
// building a lunch: every name maps to one option list in the catalog
// snapshot and (except dessert) to one selection slot on LunchSelection.
const (
	ComponentSoup      = "soup"
	ComponentPrinciple = "principle"
	ComponentSalad     = "salad"
	ComponentDrink     = "drink"
	ComponentExtra     = "extra"
	ComponentDessert   = "dessert"
	ComponentRice      = "rice"
)

// SelectableComponents are the components that have a slot on LunchSelection.
// Dessert is offered with the combo but never chosen per order.
var SelectableComponents = []string{
	ComponentSoup,
	ComponentPrinciple,
	ComponentSalad,
	ComponentDrink,
	ComponentExtra,
	ComponentRice,
}

type ProteinOption struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Available bool    `bson:"available" json:"available"`
}

type ComponentOption struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// LooseItem is an entry of the general item catalog, orderable on its own
// or substituted for a combo component.
type LooseItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type Table struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seats     int    `json:"seats"`
	Available bool   `json:"available"`
}

// CatalogSnapshot is the read-only view of the daily menu configuration plus
// the general item catalog, fetched once per composition session. Configured
// is false when no daily menu exists for the date; BasePrice then holds the
// fallback base price and every component list is empty.
type CatalogSnapshot struct {
	MenuDate   string            `json:"menu_date"`
	Configured bool              `json:"configured"`
	BasePrice  float64           `json:"base_price"`
	Proteins   []ProteinOption   `json:"proteins"`
	Soups      []ComponentOption `json:"soups"`
	Principles []ComponentOption `json:"principles"`
	Salads     []ComponentOption `json:"salads"`
	Drinks     []ComponentOption `json:"drinks"`
	Extras     []ComponentOption `json:"extras"`
	Desserts   []ComponentOption `json:"desserts"`
	Rices      []ComponentOption `json:"rices"`
	Items      []LooseItem       `json:"items"`
}

// Options returns the option list for a named component. An unknown name
// yields nil, which callers treat the same as a component that does not
// apply today.
func (c *CatalogSnapshot) Options(component string) []ComponentOption {
	switch component {
	case ComponentSoup:
		return c.Soups
	case ComponentPrinciple:
		return c.Principles
	case ComponentSalad:
		return c.Salads
	case ComponentDrink:
		return c.Drinks
	case ComponentExtra:
		return c.Extras
	case ComponentDessert:
		return c.Desserts
	case ComponentRice:
		return c.Rices
	}
	return nil
}

// Item looks up a loose item by id.
func (c *CatalogSnapshot) Item(id string) (LooseItem, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return LooseItem{}, false
}

// Protein looks up a protein option by id.
func (c *CatalogSnapshot) Protein(id string) (ProteinOption, bool) {
	for _, p := range c.Proteins {
		if p.ID == id {
			return p, true
		}
	}
	return ProteinOption{}, false
}
