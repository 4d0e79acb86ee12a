// Package catalog assembles the read-only snapshot a composition session
// works against: the day's menu configuration plus the general item catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/repo"
	storemongo "github.com/casaverde/comanda/internal/store/mongo"
	"go.uber.org/zap"
)

type ItemsAPI interface {
	Items(ctx context.Context) ([]domain.LooseItem, error)
}

type TablesAPI interface {
	Tables(ctx context.Context) ([]domain.Table, error)
}

type Reader struct {
	menuRepo         repo.DailyMenuRepository
	items            ItemsAPI
	tables           TablesAPI
	defaultBasePrice float64
	logger           *zap.SugaredLogger
}

func NewReader(
	menuRepo repo.DailyMenuRepository,
	items ItemsAPI,
	tables TablesAPI,
	defaultBasePrice float64,
	logger *zap.SugaredLogger,
) *Reader {
	return &Reader{
		menuRepo:         menuRepo,
		items:            items,
		tables:           tables,
		defaultBasePrice: defaultBasePrice,
		logger:           logger,
	}
}

// Snapshot builds the catalog view for one menu date. When no daily menu is
// configured the snapshot falls back to the default base price with empty
// component lists, so loose-item ordering keeps working.
func (r *Reader) Snapshot(ctx context.Context, menuDate string) (*domain.CatalogSnapshot, error) {
	snapshot := &domain.CatalogSnapshot{
		MenuDate:  menuDate,
		BasePrice: r.defaultBasePrice,
	}

	config, err := r.menuRepo.GetByDate(ctx, menuDate)
	switch {
	case err == nil:
		snapshot.Configured = true
		snapshot.BasePrice = config.BasePrice
		snapshot.Proteins = config.Proteins
		snapshot.Soups = config.Soups
		snapshot.Principles = config.Principles
		snapshot.Salads = config.Salads
		snapshot.Drinks = config.Drinks
		snapshot.Extras = config.Extras
		snapshot.Desserts = config.Desserts
		snapshot.Rices = config.Rices
	case errors.Is(err, storemongo.ErrMenuNotConfigured):
		r.logger.Warnw("no daily menu configured, using default base price", "menu_date", menuDate, "base_price", r.defaultBasePrice)
	default:
		return nil, fmt.Errorf("failed to read daily menu: %w", err)
	}

	items, err := r.items.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read item catalog: %w", err)
	}
	snapshot.Items = items

	return snapshot, nil
}

// Tables lists the tables currently open for dine-in seating.
func (r *Reader) Tables(ctx context.Context) ([]domain.Table, error) {
	tables, err := r.tables.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}

	available := tables[:0]
	for _, t := range tables {
		if t.Available {
			available = append(available, t)
		}
	}

	return available, nil
}
