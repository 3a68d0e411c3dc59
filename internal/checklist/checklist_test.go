package checklist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/doorcheck/internal/models"
	"github.com/julianstephens/doorcheck/internal/storage"
)

func newTestEngine(t *testing.T, now time.Time) (*Engine, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "doorcheck.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	engine := NewEngine(store)
	engine.now = func() time.Time { return now }
	return engine, store
}

var monday = time.Date(2026, 3, 9, 12, 0, 0, 0, time.Local) // a Monday

func TestLoadSeedsAndRollsOver(t *testing.T) {
	engine, store := newTestEngine(t, monday)

	state, err := engine.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(state.Items) != 5 {
		t.Fatalf("expected starter items, got %d", len(state.Items))
	}
	if state.Checks.LastResetDate != "2026-03-09" {
		t.Errorf("expected rollover to stamp today, got %q", state.Checks.LastResetDate)
	}

	// Check an item, then move to the next day: the set must reset.
	if _, err := engine.Toggle("1"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	engine.now = func() time.Time { return monday.AddDate(0, 0, 1) }

	state, err = engine.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(state.Checks.CheckedIDs) != 0 {
		t.Errorf("expected checks cleared on the new day, got %v", state.Checks.CheckedIDs)
	}
	if state.Checks.LastResetDate != "2026-03-10" {
		t.Errorf("expected new reset date, got %q", state.Checks.LastResetDate)
	}

	// And the reset must be persisted, not just in-memory.
	persisted, err := storage.LoadDailyChecks(store)
	if err != nil {
		t.Fatalf("load checks failed: %v", err)
	}
	if persisted.LastResetDate != "2026-03-10" {
		t.Errorf("expected persisted rollover, got %q", persisted.LastResetDate)
	}
}

func TestToggleCompletion(t *testing.T) {
	engine, _ := newTestEngine(t, monday)

	for _, id := range []string{"1", "2", "3", "4"} {
		completed, err := engine.Toggle(id)
		if err != nil {
			t.Fatalf("toggle %s failed: %v", id, err)
		}
		if completed {
			t.Fatalf("list should not be complete after item %s", id)
		}
	}

	completed, err := engine.Toggle("5")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !completed {
		t.Error("expected checking the last item to complete the list")
	}

	// Un-checking flips completion back off.
	completed, err = engine.Toggle("5")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if completed {
		t.Error("expected uncheck to break completion")
	}
}

func TestToggleUnknownItem(t *testing.T) {
	engine, _ := newTestEngine(t, monday)
	if _, err := engine.Toggle("missing"); err == nil {
		t.Error("expected error for unknown item")
	}
}

func TestInactiveItemsDoNotBlockCompletion(t *testing.T) {
	engine, _ := newTestEngine(t, monday)

	if err := engine.SetActive("5", false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	var completed bool
	var err error
	for _, id := range []string{"1", "2", "3", "4"} {
		completed, err = engine.Toggle(id)
		if err != nil {
			t.Fatalf("toggle %s failed: %v", id, err)
		}
	}
	if !completed {
		t.Error("expected completion without the deactivated item")
	}
}

func TestTimeRuleFiltersActiveItems(t *testing.T) {
	weekdayRule := &models.TimeRule{
		Days:  []time.Weekday{time.Monday},
		Start: "06:00",
		End:   "22:00",
	}
	items := []models.ChecklistItem{
		{ID: "a", Label: "Badge", IsActive: true, TimeRule: weekdayRule},
		{ID: "b", Label: "Keys", IsActive: true},
		{ID: "c", Label: "Gym kit", IsActive: false},
	}

	t.Run("rule matches day and window", func(t *testing.T) {
		active := ActiveItems(items, monday)
		if len(active) != 2 {
			t.Fatalf("expected 2 active items, got %d", len(active))
		}
	})

	t.Run("rule excludes other days", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		active := ActiveItems(items, tuesday)
		if len(active) != 1 || active[0].ID != "b" {
			t.Fatalf("expected only the unruled item, got %+v", active)
		}
	})

	t.Run("rule excludes out-of-window times", func(t *testing.T) {
		night := time.Date(2026, 3, 9, 23, 30, 0, 0, time.Local)
		active := ActiveItems(items, night)
		if len(active) != 1 || active[0].ID != "b" {
			t.Fatalf("expected only the unruled item, got %+v", active)
		}
	})
}

func TestAddRemoveMoveKeepDenseOrder(t *testing.T) {
	engine, store := newTestEngine(t, monday)

	added, err := engine.AddItem("🧴", "Sunscreen", nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added.SortOrder != 5 {
		t.Errorf("expected new item at the end, got sort order %d", added.SortOrder)
	}

	if err := engine.RemoveItem("3"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := engine.MoveItem(added.ID, 0); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	items, err := storage.LoadChecklistItems(store)
	if err != nil {
		t.Fatalf("load items failed: %v", err)
	}
	if items[0].ID != added.ID {
		t.Errorf("expected moved item first, got %s", items[0].ID)
	}
	for i, item := range items {
		if item.SortOrder != i {
			t.Errorf("expected dense sort orders, item %d has %d", i, item.SortOrder)
		}
	}
}

func TestAddItemValidates(t *testing.T) {
	engine, _ := newTestEngine(t, monday)
	if _, err := engine.AddItem("", "", nil); err == nil {
		t.Error("expected empty label to be rejected")
	}
}

func TestResetChecks(t *testing.T) {
	engine, _ := newTestEngine(t, monday)

	if _, err := engine.Toggle("1"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := engine.ResetChecks(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	state, err := engine.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(state.Checks.CheckedIDs) != 0 {
		t.Errorf("expected empty checks after reset, got %v", state.Checks.CheckedIDs)
	}
}

func TestAllCheckedEmptyListIsFalse(t *testing.T) {
	engine, _ := newTestEngine(t, monday)

	for _, id := range []string{"1", "2", "3", "4", "5"} {
		if err := engine.RemoveItem(id); err != nil {
			t.Fatalf("remove %s failed: %v", id, err)
		}
	}

	allChecked, err := engine.AllChecked()
	if err != nil {
		t.Fatalf("allChecked failed: %v", err)
	}
	if allChecked {
		t.Error("an empty list must not count as complete")
	}
}
