// Package pricing computes draft and session totals. Every function is pure:
// no side effects, no error cases. A missing protein simply contributes zero.
package pricing

import "github.com/casaverde/comanda/internal/domain"

// LunchTotal is the combo price: base price plus the protein's price.
// Without a protein there is no combo, so the contribution is zero.
func LunchTotal(basePrice float64, protein *domain.ProteinOption) float64 {
	if protein == nil {
		return 0
	}
	return basePrice + protein.Price
}

// LooseItemsTotal sums unit price times quantity over all lines.
func LooseItemsTotal(items []domain.LooseItemLine) float64 {
	var total float64
	for _, line := range items {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// DraftTotal combines the lunch contribution and the loose item lines.
func DraftTotal(basePrice float64, lunch *domain.LunchSelection, items []domain.LooseItemLine) float64 {
	var protein *domain.ProteinOption
	if lunch != nil {
		protein = lunch.Protein
	}
	return LunchTotal(basePrice, protein) + LooseItemsTotal(items)
}

// SessionTotal sums the captured totals of all pending drafts.
func SessionTotal(drafts []domain.DraftOrder) float64 {
	var total float64
	for _, d := range drafts {
		total += d.Total
	}
	return total
}
