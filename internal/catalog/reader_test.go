package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/casaverde/comanda/internal/domain"
	storemongo "github.com/casaverde/comanda/internal/store/mongo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMenuRepo struct {
	config *domain.DailyMenuConfig
	err    error
}

func (f *fakeMenuRepo) Upsert(_ context.Context, _ *domain.DailyMenuConfig) error { return nil }

func (f *fakeMenuRepo) GetByDate(_ context.Context, _ string) (*domain.DailyMenuConfig, error) {
	return f.config, f.err
}

type fakeBackend struct {
	items  []domain.LooseItem
	tables []domain.Table
	err    error
}

func (f *fakeBackend) Items(_ context.Context) ([]domain.LooseItem, error) {
	return f.items, f.err
}

func (f *fakeBackend) Tables(_ context.Context) ([]domain.Table, error) {
	return f.tables, f.err
}

func TestSnapshotConfiguredDay(t *testing.T) {
	menuRepo := &fakeMenuRepo{
		config: &domain.DailyMenuConfig{
			MenuDate:  "2026-08-29",
			BasePrice: 5000,
			Proteins:  []domain.ProteinOption{{ID: "p1", Name: "res", Price: 2000, Available: true}},
			Soups:     []domain.ComponentOption{{ID: "s1", Name: "sancocho"}},
		},
	}
	backend := &fakeBackend{
		items: []domain.LooseItem{{ID: "i1", Name: "jugo de mango", Price: 3000, Available: true}},
	}

	r := NewReader(menuRepo, backend, backend, 4000, zap.NewNop().Sugar())

	snapshot, err := r.Snapshot(context.Background(), "2026-08-29")
	require.NoError(t, err)

	require.True(t, snapshot.Configured)
	require.Equal(t, 5000.0, snapshot.BasePrice)
	require.Len(t, snapshot.Proteins, 1)
	require.Len(t, snapshot.Soups, 1)
	require.Len(t, snapshot.Items, 1)
}

func TestSnapshotFallsBackWhenNotConfigured(t *testing.T) {
	menuRepo := &fakeMenuRepo{err: storemongo.ErrMenuNotConfigured}
	backend := &fakeBackend{
		items: []domain.LooseItem{{ID: "i1", Name: "jugo de mango", Price: 3000, Available: true}},
	}

	r := NewReader(menuRepo, backend, backend, 4000, zap.NewNop().Sugar())

	snapshot, err := r.Snapshot(context.Background(), "2026-08-30")
	require.NoError(t, err)

	require.False(t, snapshot.Configured)
	require.Equal(t, 4000.0, snapshot.BasePrice)
	require.Empty(t, snapshot.Proteins)
	require.Len(t, snapshot.Items, 1, "loose-item ordering keeps working without a daily menu")
}

func TestSnapshotPropagatesRepoError(t *testing.T) {
	menuRepo := &fakeMenuRepo{err: errors.New("connection reset")}
	backend := &fakeBackend{}

	r := NewReader(menuRepo, backend, backend, 4000, zap.NewNop().Sugar())

	_, err := r.Snapshot(context.Background(), "2026-08-29")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read daily menu")
}

func TestTablesFiltersUnavailable(t *testing.T) {
	backend := &fakeBackend{
		tables: []domain.Table{
			{ID: "t1", Name: "mesa 1", Seats: 4, Available: true},
			{ID: "t2", Name: "mesa 2", Seats: 2, Available: false},
			{ID: "t3", Name: "mesa 3", Seats: 6, Available: true},
		},
	}

	r := NewReader(&fakeMenuRepo{}, backend, backend, 4000, zap.NewNop().Sugar())

	tables, err := r.Tables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	require.Equal(t, "t1", tables[0].ID)
	require.Equal(t, "t3", tables[1].ID)
}
