package repo

import (
	"context"

	"github.com/casaverde/comanda/internal/domain"
)

type DailyMenuRepository interface {
	// Upsert creates or replaces the configuration for its menu date.
	Upsert(ctx context.Context, config *domain.DailyMenuConfig) error
	GetByDate(ctx context.Context, menuDate string) (*domain.DailyMenuConfig, error)
}
