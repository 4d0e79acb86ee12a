package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyMenuConfig is the persisted configuration of one day's lunch menu:
// the base price added to every combo, the protein options, and the option
// list for each combo component. One document per menu date.
type DailyMenuConfig struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MenuDate   string             `bson:"menu_date" json:"menu_date"`
	BasePrice  float64            `bson:"base_price" json:"base_price"`
	Proteins   []ProteinOption    `bson:"proteins" json:"proteins"`
	Soups      []ComponentOption  `bson:"soups" json:"soups"`
	Principles []ComponentOption  `bson:"principles" json:"principles"`
	Salads     []ComponentOption  `bson:"salads" json:"salads"`
	Drinks     []ComponentOption  `bson:"drinks" json:"drinks"`
	Extras     []ComponentOption  `bson:"extras" json:"extras"`
	Desserts   []ComponentOption  `bson:"desserts" json:"desserts"`
	Rices      []ComponentOption  `bson:"rices" json:"rices"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// SetOptions stores an option list under a component name. Unknown names are
// ignored so a sheet with extra sections does not fail the import.
func (c *DailyMenuConfig) SetOptions(component string, options []ComponentOption) {
	switch component {
	case ComponentSoup:
		c.Soups = options
	case ComponentPrinciple:
		c.Principles = options
	case ComponentSalad:
		c.Salads = options
	case ComponentDrink:
		c.Drinks = options
	case ComponentExtra:
		c.Extras = options
	case ComponentDessert:
		c.Desserts = options
	case ComponentRice:
		c.Rices = options
	}
}
