package pricing

import (
	"testing"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestLunchTotal(t *testing.T) {
	protein := &domain.ProteinOption{ID: "p1", Name: "Grilled chicken", Price: 6000}

	require.Equal(t, 10000.0, LunchTotal(4000, protein))
	require.Equal(t, 0.0, LunchTotal(4000, nil))
	require.Equal(t, 6000.0, LunchTotal(0, protein))
}

func TestLooseItemsTotal(t *testing.T) {
	items := []domain.LooseItemLine{
		{ItemID: "i1", Name: "Juice", Price: 3000, Quantity: 2},
		{ItemID: "i2", Name: "Empanada", Price: 1500, Quantity: 1},
		{ItemID: "i3", Name: "Coffee", Price: 2000, Quantity: 3},
	}

	require.Equal(t, 13500.0, LooseItemsTotal(items))

	// order of lines must not matter
	reversed := []domain.LooseItemLine{items[2], items[1], items[0]}
	require.Equal(t, LooseItemsTotal(items), LooseItemsTotal(reversed))

	// removing a line removes exactly its contribution
	without := []domain.LooseItemLine{items[0], items[2]}
	require.Equal(t, 12000.0, LooseItemsTotal(without))

	require.Equal(t, 0.0, LooseItemsTotal(nil))
}

func TestDraftTotal(t *testing.T) {
	lunch := &domain.LunchSelection{
		Protein: &domain.ProteinOption{ID: "p1", Name: "Beef", Price: 6000},
	}
	items := []domain.LooseItemLine{
		{ItemID: "i1", Name: "Juice", Price: 3000, Quantity: 1},
	}

	require.Equal(t, 13000.0, DraftTotal(4000, lunch, items))
	require.Equal(t, 3000.0, DraftTotal(4000, nil, items))
	require.Equal(t, 3000.0, DraftTotal(4000, &domain.LunchSelection{}, items))
}

// base price 4000, protein 6000, single soup option auto-selected, no loose
// items: the draft must come out at exactly 10000.
func TestDraftTotalComboOnly(t *testing.T) {
	lunch := &domain.LunchSelection{
		Protein: &domain.ProteinOption{ID: "p1", Name: "Pork loin", Price: 6000},
		Soup:    &domain.ComponentOption{ID: "s1", Name: "Lentil soup"},
	}

	require.Equal(t, 10000.0, DraftTotal(4000, lunch, nil))
}

func TestSessionTotal(t *testing.T) {
	drafts := []domain.DraftOrder{
		{ID: "d1", Total: 10000},
		{ID: "d2", Total: 4500},
	}

	require.Equal(t, 14500.0, SessionTotal(drafts))
	require.Equal(t, 0.0, SessionTotal(nil))
}
