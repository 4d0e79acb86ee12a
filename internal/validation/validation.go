// Package validation checks a candidate draft against the current catalog
// snapshot. All applicable rules are evaluated; the caller gets every error
// at once, keyed by field name for display next to the offending control.
package validation

import (
	"fmt"

	"github.com/casaverde/comanda/internal/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredComponents are the combo slots that demand an explicit choice when
// a protein is selected. Rice is auto-filled or optional and dessert has no
// selection slot, so neither is checked here.
var requiredComponents = []string{
	domain.ComponentSoup,
	domain.ComponentPrinciple,
	domain.ComponentSalad,
	domain.ComponentDrink,
	domain.ComponentExtra,
}

// ValidateDraft inspects the in-progress draft. Rules:
//
//  1. A draft must carry a protein or at least one loose item.
//  2. With a protein selected, every component whose option list has two or
//     more entries needs an explicit choice. Single-option lists are exempt
//     because reconciliation auto-selects them; empty lists do not apply.
//  3. Dine-in orders need a table, evaluated against the table assigned at
//     the moment of validation.
func ValidateDraft(
	selection *domain.LunchSelection,
	items []domain.LooseItemLine,
	snapshot *domain.CatalogSnapshot,
	orderType domain.OrderType,
	tableID string,
) []ValidationError {
	var errs []ValidationError

	hasProtein := selection != nil && selection.Protein != nil

	if !hasProtein && len(items) == 0 {
		errs = append(errs, ValidationError{
			Field:   "protein",
			Message: "select a protein or add at least one item",
		})
	}

	if hasProtein && snapshot != nil {
		for _, component := range requiredComponents {
			options := snapshot.Options(component)
			if len(options) < 2 {
				continue
			}
			if selection.Component(component) == nil {
				errs = append(errs, ValidationError{
					Field:   component,
					Message: fmt.Sprintf("choose a %s for the combo", component),
				})
			}
		}
	}

	if orderType == domain.OrderTypeDineIn && tableID == "" {
		errs = append(errs, ValidationError{
			Field:   "table",
			Message: "a table is required for dine-in orders",
		})
	}

	return errs
}
