package validation

import (
	"testing"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/stretchr/testify/require"
)

func snapshotWithSoups(soups ...domain.ComponentOption) *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		Configured: true,
		BasePrice:  4000,
		Proteins: []domain.ProteinOption{
			{ID: "p1", Name: "Chicken", Price: 6000, Available: true},
		},
		Soups:      soups,
		Principles: []domain.ComponentOption{{ID: "pr1", Name: "Beans"}},
		Salads:     []domain.ComponentOption{{ID: "sa1", Name: "House salad"}},
		Drinks:     []domain.ComponentOption{{ID: "dr1", Name: "Lemonade"}},
		Extras:     []domain.ComponentOption{{ID: "ex1", Name: "Plantain"}},
		Rices:      []domain.ComponentOption{{ID: "ri1", Name: "White rice"}},
	}
}

func fields(errs []ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateDraft(t *testing.T) {
	threeSoups := snapshotWithSoups(
		domain.ComponentOption{ID: "s1", Name: "Lentil"},
		domain.ComponentOption{ID: "s2", Name: "Vegetable"},
		domain.ComponentOption{ID: "s3", Name: "Chicken broth"},
	)
	protein := &domain.ProteinOption{ID: "p1", Name: "Chicken", Price: 6000}

	tests := []struct {
		name       string
		selection  *domain.LunchSelection
		items      []domain.LooseItemLine
		snapshot   *domain.CatalogSnapshot
		orderType  domain.OrderType
		tableID    string
		wantFields []string
	}{
		{
			name:       "empty draft reports protein",
			selection:  &domain.LunchSelection{},
			snapshot:   threeSoups,
			orderType:  domain.OrderTypeTakeout,
			wantFields: []string{"protein"},
		},
		{
			name:       "nil selection with no items reports protein",
			selection:  nil,
			snapshot:   threeSoups,
			orderType:  domain.OrderTypeTakeout,
			wantFields: []string{"protein"},
		},
		{
			name:      "loose items alone are a valid draft",
			selection: &domain.LunchSelection{},
			items: []domain.LooseItemLine{
				{ItemID: "i1", Name: "Empanada", Price: 1500, Quantity: 2},
			},
			snapshot:   threeSoups,
			orderType:  domain.OrderTypeTakeout,
			wantFields: nil,
		},
		{
			name:       "protein with unset multi-option soup reports exactly soup",
			selection:  &domain.LunchSelection{Protein: protein},
			snapshot:   threeSoups,
			orderType:  domain.OrderTypeTakeout,
			wantFields: []string{"soup"},
		},
		{
			name: "choosing the soup clears that error",
			selection: &domain.LunchSelection{
				Protein: protein,
				Soup:    &domain.ComponentOption{ID: "s2", Name: "Vegetable"},
			},
			snapshot:   threeSoups,
			orderType:  domain.OrderTypeTakeout,
			wantFields: nil,
		},
		{
			name:       "single-option components are exempt",
			selection:  &domain.LunchSelection{Protein: protein},
			snapshot:   snapshotWithSoups(domain.ComponentOption{ID: "s1", Name: "Lentil"}),
			orderType:  domain.OrderTypeTakeout,
			wantFields: nil,
		},
		{
			name:       "empty component list does not apply",
			selection:  &domain.LunchSelection{Protein: protein},
			snapshot:   snapshotWithSoups(),
			orderType:  domain.OrderTypeTakeout,
			wantFields: nil,
		},
		{
			name:       "dine-in without table reports table",
			selection:  &domain.LunchSelection{Protein: protein},
			snapshot:   snapshotWithSoups(domain.ComponentOption{ID: "s1", Name: "Lentil"}),
			orderType:  domain.OrderTypeDineIn,
			wantFields: []string{"table"},
		},
		{
			name:       "dine-in with table passes",
			selection:  &domain.LunchSelection{Protein: protein},
			snapshot:   snapshotWithSoups(domain.ComponentOption{ID: "s1", Name: "Lentil"}),
			orderType:  domain.OrderTypeDineIn,
			tableID:    "t4",
			wantFields: nil,
		},
		{
			name:       "all applicable errors are reported together",
			selection:  &domain.LunchSelection{Protein: protein},
			snapshot:   threeSoups,
			orderType:  domain.OrderTypeDineIn,
			wantFields: []string{"soup", "table"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDraft(tt.selection, tt.items, tt.snapshot, tt.orderType, tt.tableID)
			require.Equal(t, tt.wantFields, fields(errs))
		})
	}
}

func TestValidateDraftMultipleMissingComponents(t *testing.T) {
	snapshot := snapshotWithSoups(
		domain.ComponentOption{ID: "s1", Name: "Lentil"},
		domain.ComponentOption{ID: "s2", Name: "Vegetable"},
	)
	snapshot.Drinks = []domain.ComponentOption{
		{ID: "dr1", Name: "Lemonade"},
		{ID: "dr2", Name: "Juice"},
	}

	selection := &domain.LunchSelection{
		Protein: &domain.ProteinOption{ID: "p1", Name: "Chicken", Price: 6000},
	}

	errs := ValidateDraft(selection, nil, snapshot, domain.OrderTypeTakeout, "")
	require.Equal(t, []string{"soup", "drink"}, fields(errs))
}
