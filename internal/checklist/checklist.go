// Package checklist manages the essential-items list and its per-day checked
// state. The day boundary is lazy: the checked set resets on the first read
// of a new calendar day, not on a timer.
package checklist

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/doorcheck/internal/models"
	"github.com/julianstephens/doorcheck/internal/policy"
	"github.com/julianstephens/doorcheck/internal/storage"
	"github.com/julianstephens/doorcheck/internal/utils"
)

// Engine wraps a storage provider with checklist semantics.
type Engine struct {
	store storage.Provider
	now   func() time.Time
}

func NewEngine(store storage.Provider) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}

// State is a consistent snapshot of the checklist for one instant.
type State struct {
	Items  []models.ChecklistItem
	Checks models.DailyChecks
}

// Load reads items and today's checks, applying the lazy rollover: a stale
// lastResetDate clears the checked set and persists the new day immediately.
func (e *Engine) Load() (State, error) {
	items, err := storage.LoadChecklistItems(e.store)
	if err != nil {
		return State{}, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

	now := e.now()
	checks, err := storage.LoadDailyChecks(e.store)
	if err != nil {
		return State{}, err
	}

	today := utils.Today(now)
	if checks.LastResetDate != today {
		checks = models.DailyChecks{CheckedIDs: []string{}, LastResetDate: today}
		if err := storage.SaveDailyChecks(e.store, checks); err != nil {
			return State{}, err
		}
	}

	return State{Items: items, Checks: checks}, nil
}

// ActiveItems returns the items that count toward completion right now:
// active items whose time rule (if any) is due at the given instant.
func ActiveItems(items []models.ChecklistItem, now time.Time) []models.ChecklistItem {
	active := make([]models.ChecklistItem, 0, len(items))
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		if item.TimeRule != nil && !ruleDue(item.TimeRule, now) {
			continue
		}
		active = append(active, item)
	}
	return active
}

func ruleDue(rule *models.TimeRule, now time.Time) bool {
	dayMatch := false
	for _, d := range rule.Days {
		if d == now.Weekday() {
			dayMatch = true
			break
		}
	}
	if !dayMatch {
		return false
	}
	return policy.WithinActiveHours(rule.Start, rule.End, now)
}

// AllChecked reports whether every currently-active item is checked.
func (e *Engine) AllChecked() (bool, error) {
	state, err := e.Load()
	if err != nil {
		return false, err
	}
	return allChecked(state, e.now()), nil
}

func allChecked(state State, now time.Time) bool {
	active := ActiveItems(state.Items, now)
	if len(active) == 0 {
		return false
	}
	for _, item := range active {
		if !state.Checks.Checked(item.ID) {
			return false
		}
	}
	return true
}

// Toggle flips an item's membership in today's checked set and reports
// whether the toggle completed the list (every active item now checked).
// Completion is the signal the streak engine consumes; un-checking never
// undoes a streak already recorded for today.
func (e *Engine) Toggle(id string) (completed bool, err error) {
	state, err := e.Load()
	if err != nil {
		return false, err
	}

	found := false
	for _, item := range state.Items {
		if item.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false, fmt.Errorf("item not found: %s", id)
	}

	if state.Checks.Checked(id) {
		next := make([]string, 0, len(state.Checks.CheckedIDs))
		for _, cid := range state.Checks.CheckedIDs {
			if cid != id {
				next = append(next, cid)
			}
		}
		state.Checks.CheckedIDs = next
	} else {
		state.Checks.CheckedIDs = append(state.Checks.CheckedIDs, id)
	}

	if err := storage.SaveDailyChecks(e.store, state.Checks); err != nil {
		return false, err
	}

	return allChecked(state, e.now()), nil
}

// ResetChecks clears today's checked set manually.
func (e *Engine) ResetChecks() error {
	checks := models.DailyChecks{
		CheckedIDs:    []string{},
		LastResetDate: utils.Today(e.now()),
	}
	return storage.SaveDailyChecks(e.store, checks)
}

// AddItem appends a new item at the end of the list.
func (e *Engine) AddItem(emoji, label string, rule *models.TimeRule) (models.ChecklistItem, error) {
	items, err := storage.LoadChecklistItems(e.store)
	if err != nil {
		return models.ChecklistItem{}, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

	item := models.ChecklistItem{
		ID:        uuid.NewString(),
		Emoji:     emoji,
		Label:     label,
		SortOrder: len(items),
		TimeRule:  rule,
		IsActive:  true,
	}
	if err := item.Validate(); err != nil {
		return models.ChecklistItem{}, err
	}

	items = append(items, item)
	renumber(items)
	if err := storage.SaveChecklistItems(e.store, items); err != nil {
		return models.ChecklistItem{}, err
	}
	return item, nil
}

// RemoveItem deletes an item and renumbers the remainder densely.
func (e *Engine) RemoveItem(id string) error {
	items, err := storage.LoadChecklistItems(e.store)
	if err != nil {
		return err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

	next := make([]models.ChecklistItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if len(next) == len(items) {
		return fmt.Errorf("item not found: %s", id)
	}

	renumber(next)
	return storage.SaveChecklistItems(e.store, next)
}

// SetActive flips an item's active flag without touching check state.
func (e *Engine) SetActive(id string, active bool) error {
	items, err := storage.LoadChecklistItems(e.store)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == id {
			items[i].IsActive = active
			return storage.SaveChecklistItems(e.store, items)
		}
	}
	return fmt.Errorf("item not found: %s", id)
}

// MoveItem moves an item to the given position (0-based) and renumbers
// everything densely.
func (e *Engine) MoveItem(id string, position int) error {
	items, err := storage.LoadChecklistItems(e.store)
	if err != nil {
		return err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

	idx := -1
	for i, item := range items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("item not found: %s", id)
	}
	if position < 0 {
		position = 0
	}
	if position >= len(items) {
		position = len(items) - 1
	}

	moved := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	items = append(items[:position], append([]models.ChecklistItem{moved}, items[position:]...)...)

	renumber(items)
	return storage.SaveChecklistItems(e.store, items)
}

// renumber assigns dense 0..n-1 sort orders in current slice order. Callers
// arrange the slice first.
func renumber(items []models.ChecklistItem) {
	for i := range items {
		items[i].SortOrder = i
	}
}
