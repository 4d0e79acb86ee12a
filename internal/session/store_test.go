package session

import (
	"testing"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testSnapshot builds a configured day where every component has exactly one
// option, so a fresh selection is complete as soon as a protein is chosen.
func testSnapshot() *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		MenuDate:   "2026-08-29",
		Configured: true,
		BasePrice:  4000,
		Proteins: []domain.ProteinOption{
			{ID: "p1", Name: "res", Price: 2000, Available: true},
			{ID: "p2", Name: "pollo", Price: 1500, Available: true},
		},
		Soups:      []domain.ComponentOption{{ID: "s1", Name: "sancocho"}},
		Principles: []domain.ComponentOption{{ID: "pr1", Name: "frijoles"}},
		Salads:     []domain.ComponentOption{{ID: "sa1", Name: "ensalada"}},
		Drinks:     []domain.ComponentOption{{ID: "d1", Name: "limonada"}},
		Extras:     []domain.ComponentOption{{ID: "e1", Name: "patacon"}},
		Rices:      []domain.ComponentOption{{ID: "r1", Name: "arroz blanco"}},
		Items: []domain.LooseItem{
			{ID: "i1", Name: "jugo de mango", Price: 3000, Available: true},
			{ID: "i2", Name: "arepa", Price: 1000, Available: true},
		},
	}
}

func newTestManager(t *testing.T, orderType domain.OrderType, snapshot *domain.CatalogSnapshot) (*Manager, string) {
	t.Helper()

	m := NewManager(zap.NewNop().Sugar())

	sess, err := m.Create(orderType, "")
	require.NoError(t, err)

	if snapshot != nil {
		require.NoError(t, m.AttachSnapshot(sess.ID, snapshot))
	}

	return m, sess.ID
}

func TestCreateRejectsInvalidOrderType(t *testing.T) {
	m := NewManager(zap.NewNop().Sugar())

	_, err := m.Create(domain.OrderType("drive_thru"), "")
	require.ErrorIs(t, err, ErrInvalidOrderType)
}

func TestAttachSnapshotAutoSelectsSingleOptions(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	sess, err := m.Get(id)
	require.NoError(t, err)

	for _, component := range domain.SelectableComponents {
		opt := sess.Current.Component(component)
		require.NotNil(t, opt, "component %s should be auto-selected", component)
	}
	require.Equal(t, "sancocho", sess.Current.Soup.Name)

	// attaching again must not change anything
	require.NoError(t, m.AttachSnapshot(id, sess.Snapshot))

	again, err := m.Get(id)
	require.NoError(t, err)
	require.Equal(t, sess.Current, again.Current)
}

func TestAutoSelectKeepsExplicitChoice(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Soups = []domain.ComponentOption{
		{ID: "s1", Name: "sancocho"},
		{ID: "s2", Name: "ajiaco"},
	}

	m, id := newTestManager(t, domain.OrderTypeTakeout, snapshot)

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.Nil(t, sess.Current.Soup, "two options must not auto-select")

	require.NoError(t, m.SetComponent(id, domain.ComponentSoup, "s2"))
	require.NoError(t, m.AttachSnapshot(id, snapshot))

	sess, err = m.Get(id)
	require.NoError(t, err)
	require.Equal(t, "s2", sess.Current.Soup.ID)
}

func TestSetComponentRejectsUnknownOption(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	err := m.SetComponent(id, domain.ComponentSoup, "nope")
	require.ErrorIs(t, err, ErrUnknownOption)

	err = m.SetComponent(id, "dessert", "s1")
	require.ErrorIs(t, err, ErrUnknownComponent)
}

func TestAddItemMergesQuantities(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.AddItem(id, "i1", 1))
	require.NoError(t, m.AddItem(id, "i1", 2))

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.Len(t, sess.CurrentItems, 1)
	require.Equal(t, 3, sess.CurrentItems[0].Quantity)

	require.NoError(t, m.SetItemQuantity(id, "i1", 0))

	sess, err = m.Get(id)
	require.NoError(t, err)
	require.Empty(t, sess.CurrentItems)
}

func TestAddDraftValidationFailureMutatesNothing(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	// no protein and no items
	draft, errs, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)
	require.Nil(t, draft)
	require.NotEmpty(t, errs)

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.Empty(t, sess.Drafts)
	require.NotNil(t, sess.Current.Soup, "auto-selection must survive a failed finalize")
}

func TestAddDraftPricesAndResets(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.SetProtein(id, "p1"))
	require.NoError(t, m.AddItem(id, "i1", 1))
	require.NoError(t, m.SetNotes(id, "sin cebolla"))

	draft, errs, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, draft)

	// 4000 base + 2000 protein + 3000 loose item
	require.Equal(t, 9000.0, draft.Total)
	require.Equal(t, "sin cebolla", draft.Notes)
	require.Contains(t, draft.Summary, "soup: sancocho")
	require.Contains(t, draft.Summary, "sin cebolla")

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.Len(t, sess.Drafts, 1)
	require.Nil(t, sess.Current.Protein)
	require.Empty(t, sess.CurrentItems)
	require.Empty(t, sess.CurrentNotes)
	require.NotNil(t, sess.Current.Soup, "reset must re-run auto-selection")
}

func TestEditDraftRoundTrip(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.SetProtein(id, "p1"))
	first, _, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)

	require.NoError(t, m.EditDraft(id, 0))

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.NotNil(t, sess.EditIndex)
	require.Equal(t, 0, *sess.EditIndex)
	require.Equal(t, "p1", sess.Current.Protein.ID)

	// change the protein and finalize again
	require.NoError(t, m.SetProtein(id, "p2"))
	updated, errs, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)
	require.Empty(t, errs)

	require.Equal(t, first.ID, updated.ID, "edit must replace in place")
	require.Equal(t, first.CreatedAt, updated.CreatedAt)
	require.Equal(t, 5500.0, updated.Total)

	sess, err = m.Get(id)
	require.NoError(t, err)
	require.Len(t, sess.Drafts, 1)
	require.Nil(t, sess.EditIndex)
	require.Equal(t, "p2", sess.Drafts[0].Lunch.Protein.ID)
}

func TestDuplicateDraft(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.SetProtein(id, "p1"))
	first, _, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)

	require.NoError(t, m.MarkDraftFailed(id, first.ID, "out of stock"))

	dup, err := m.DuplicateDraft(id, 0)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, dup.ID)
	require.Empty(t, dup.SubmitError, "duplicate must start clean")
	require.Equal(t, first.Total, dup.Total)

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.Len(t, sess.Drafts, 2)
	require.Equal(t, "out of stock", sess.Drafts[0].SubmitError)
}

func TestRemoveDraftUnderEditResetsSelection(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.SetProtein(id, "p1"))
	_, _, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)
	require.NoError(t, m.SetProtein(id, "p2"))
	_, _, err = m.AddOrUpdateDraft(id)
	require.NoError(t, err)

	require.NoError(t, m.EditDraft(id, 1))
	require.NoError(t, m.RemoveDraft(id, 1))

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.Len(t, sess.Drafts, 1)
	require.Nil(t, sess.EditIndex)
	require.Nil(t, sess.Current.Protein)
}

func TestRemoveDraftShiftsEditIndex(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.SetProtein(id, "p1"))
	_, _, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)
	require.NoError(t, m.SetProtein(id, "p2"))
	second, _, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)

	require.NoError(t, m.EditDraft(id, 1))
	require.NoError(t, m.RemoveDraft(id, 0))

	sess, err := m.Get(id)
	require.NoError(t, err)
	require.NotNil(t, sess.EditIndex)
	require.Equal(t, 0, *sess.EditIndex)
	require.Equal(t, second.ID, sess.Drafts[0].ID)
}

func TestReplacementsDoNotChangeTotal(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.SetProtein(id, "p1"))

	replacement, err := m.AddReplacement(id, domain.ComponentSoup, "sancocho", "i1")
	require.NoError(t, err)
	require.Equal(t, "jugo de mango", replacement.ToItemName)

	draft, errs, err := m.AddOrUpdateDraft(id)
	require.NoError(t, err)
	require.Empty(t, errs)

	require.Equal(t, 6000.0, draft.Total, "a replacement is an annotation, never a price change")
	require.Contains(t, draft.Summary, "no soup (sancocho), instead: jugo de mango")
}

func TestGetReturnsDeepCopy(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.SetProtein(id, "p1"))

	sess, err := m.Get(id)
	require.NoError(t, err)

	sess.Current.Protein.Name = "mutated"

	fresh, err := m.Get(id)
	require.NoError(t, err)
	require.Equal(t, "res", fresh.Current.Protein.Name)
}

func TestDestroy(t *testing.T) {
	m, id := newTestManager(t, domain.OrderTypeTakeout, testSnapshot())

	require.NoError(t, m.Destroy(id))

	_, err := m.Get(id)
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.ErrorIs(t, m.Destroy(id), ErrSessionNotFound)
}
