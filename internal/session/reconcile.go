package session

import "github.com/casaverde/comanda/internal/domain"

// reconcile fills every component slot whose catalog list has exactly one
// option, the "fixed" components a customer never chooses. It is idempotent
// and only fills slots that are currently unset, so it never overrides an
// explicit choice and can run again on every snapshot attach or selection
// reset without effect.
func reconcile(selection *domain.LunchSelection, snapshot *domain.CatalogSnapshot) {
	if selection == nil || snapshot == nil {
		return
	}

	for _, component := range domain.SelectableComponents {
		options := snapshot.Options(component)
		if len(options) != 1 {
			continue
		}
		if selection.Component(component) != nil {
			continue
		}

		only := options[0]
		selection.SetComponent(component, &only)
	}
}
