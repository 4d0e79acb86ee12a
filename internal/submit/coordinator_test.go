package submit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/queue"
	"github.com/casaverde/comanda/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOrderAPI accepts every submission except the ones whose first line
// matches a name in fail.
type fakeOrderAPI struct {
	mu    sync.Mutex
	fail  map[string]string
	calls int
}

func (f *fakeOrderAPI) Submit(_ context.Context, _ domain.OrderType, _ string, items []domain.LineItem) (domain.OrderResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if message, ok := f.fail[items[0].Name]; ok {
		return domain.OrderResult{}, errors.New(message)
	}

	return domain.OrderResult{OrderID: "order-" + items[0].Name}, nil
}

type fakeBroker struct {
	mu        sync.Mutex
	published [][]byte
}

func (f *fakeBroker) Publish(_ context.Context, _ string, message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, message)
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string, _ queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) Close() error { return nil }

func testSnapshot() *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		MenuDate:   "2026-08-29",
		Configured: true,
		BasePrice:  4000,
		Proteins: []domain.ProteinOption{
			{ID: "p1", Name: "res", Price: 2000, Available: true},
			{ID: "p2", Name: "pollo", Price: 1500, Available: true},
			{ID: "p3", Name: "cerdo", Price: 1800, Available: true},
		},
		Soups: []domain.ComponentOption{{ID: "s1", Name: "sancocho"}},
	}
}

// sessionWithDrafts builds a takeout session holding one finalized draft per
// protein id.
func sessionWithDrafts(t *testing.T, proteins ...string) (*session.Manager, string) {
	t.Helper()

	m := session.NewManager(zap.NewNop().Sugar())

	sess, err := m.Create(domain.OrderTypeTakeout, "")
	require.NoError(t, err)
	require.NoError(t, m.AttachSnapshot(sess.ID, testSnapshot()))

	for _, proteinID := range proteins {
		require.NoError(t, m.SetProtein(sess.ID, proteinID))
		_, errs, err := m.AddOrUpdateDraft(sess.ID)
		require.NoError(t, err)
		require.Empty(t, errs)
	}

	return m, sess.ID
}

func TestConfirmNoDrafts(t *testing.T) {
	m, id := sessionWithDrafts(t)

	c := NewCoordinator(m, &fakeOrderAPI{}, &fakeBroker{}, zap.NewNop().Sugar())

	_, err := c.Confirm(context.Background(), id)
	require.ErrorIs(t, err, ErrNoDrafts)
}

func TestConfirmUnknownSession(t *testing.T) {
	m := session.NewManager(zap.NewNop().Sugar())
	c := NewCoordinator(m, &fakeOrderAPI{}, &fakeBroker{}, zap.NewNop().Sugar())

	_, err := c.Confirm(context.Background(), "missing")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestConfirmDineInRequiresTable(t *testing.T) {
	m := session.NewManager(zap.NewNop().Sugar())

	sess, err := m.Create(domain.OrderTypeDineIn, "t1")
	require.NoError(t, err)
	require.NoError(t, m.AttachSnapshot(sess.ID, testSnapshot()))
	require.NoError(t, m.SetProtein(sess.ID, "p1"))
	_, errs, err := m.AddOrUpdateDraft(sess.ID)
	require.NoError(t, err)
	require.Empty(t, errs)

	// the table went away between finalize and confirm
	require.NoError(t, m.SetTable(sess.ID, ""))

	c := NewCoordinator(m, &fakeOrderAPI{}, &fakeBroker{}, zap.NewNop().Sugar())

	_, err = c.Confirm(context.Background(), sess.ID)
	require.ErrorIs(t, err, ErrTableRequired)
}

func TestConfirmFullSuccessDestroysSession(t *testing.T) {
	m, id := sessionWithDrafts(t, "p1", "p2")

	orders := &fakeOrderAPI{}
	broker := &fakeBroker{}
	c := NewCoordinator(m, orders, broker, zap.NewNop().Sugar())

	report, err := c.Confirm(context.Background(), id)
	require.NoError(t, err)

	require.Equal(t, 2, report.Submitted)
	require.Equal(t, 0, report.Failed)
	require.True(t, report.Cleared)
	// (4000+2000) + (4000+1500)
	require.Equal(t, 11500.0, report.Total)
	require.Equal(t, 2, orders.calls)

	_, err = m.Get(id)
	require.ErrorIs(t, err, session.ErrSessionNotFound)

	require.Len(t, broker.published, 2)
}

func TestConfirmPartialFailureKeepsFailedDrafts(t *testing.T) {
	m, id := sessionWithDrafts(t, "p1", "p2", "p3")

	orders := &fakeOrderAPI{fail: map[string]string{"pollo": "out of stock"}}
	broker := &fakeBroker{}
	c := NewCoordinator(m, orders, broker, zap.NewNop().Sugar())

	report, err := c.Confirm(context.Background(), id)
	require.NoError(t, err)

	require.Equal(t, 2, report.Submitted)
	require.Equal(t, 1, report.Failed)
	require.False(t, report.Cleared)
	// only accepted drafts count: (4000+2000) + (4000+1800)
	require.Equal(t, 11800.0, report.Total)

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.Len(t, sess.Drafts, 1, "accepted drafts must be removed, failed ones kept")
	require.Equal(t, "p2", sess.Drafts[0].Lunch.Protein.ID)
	require.Equal(t, "out of stock", sess.Drafts[0].SubmitError)

	require.Len(t, broker.published, 3)
}

func TestConfirmRetryAfterPartialFailure(t *testing.T) {
	m, id := sessionWithDrafts(t, "p1", "p2")

	orders := &fakeOrderAPI{fail: map[string]string{"pollo": "out of stock"}}
	c := NewCoordinator(m, orders, &fakeBroker{}, zap.NewNop().Sugar())

	report, err := c.Confirm(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)

	// the kitchen restocked; the remaining draft goes through
	orders.mu.Lock()
	orders.fail = nil
	orders.mu.Unlock()

	report, err = c.Confirm(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 1, report.Submitted)
	require.Equal(t, 0, report.Failed)
	require.True(t, report.Cleared)
	require.Equal(t, 5500.0, report.Total)

	_, err = m.Get(id)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestBuildLineItems(t *testing.T) {
	snapshot := testSnapshot()
	sess := &domain.CompositionSession{Snapshot: snapshot}

	protein := snapshot.Proteins[0]
	draft := domain.DraftOrder{
		Lunch:   &domain.LunchSelection{Protein: &protein},
		Summary: "soup: sancocho",
		Items: []domain.LooseItemLine{
			{ItemID: "i1", Name: "jugo de mango", Price: 3000, Quantity: 2},
		},
	}

	items := buildLineItems(sess, draft)
	require.Len(t, items, 2)

	require.Equal(t, "res", items[0].Name)
	require.Equal(t, 6000.0, items[0].Price)
	require.Equal(t, "soup: sancocho", items[0].Note)

	require.Equal(t, "jugo de mango", items[1].Name)
	require.Equal(t, 2, items[1].Quantity)
	require.Empty(t, items[1].Note)
}

func TestBuildLineItemsCarriesNotesWithoutCombo(t *testing.T) {
	sess := &domain.CompositionSession{Snapshot: testSnapshot()}

	draft := domain.DraftOrder{
		Notes: "para llevar",
		Items: []domain.LooseItemLine{
			{ItemID: "i1", Name: "jugo de mango", Price: 3000, Quantity: 1},
		},
	}

	items := buildLineItems(sess, draft)
	require.Len(t, items, 1)
	require.Equal(t, "para llevar", items[0].Note)
}

func TestBuildLineItemsEmptyDraft(t *testing.T) {
	sess := &domain.CompositionSession{Snapshot: testSnapshot()}

	items := buildLineItems(sess, domain.DraftOrder{})
	require.Empty(t, items)
}
