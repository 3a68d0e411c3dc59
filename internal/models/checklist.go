package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/doorcheck/internal/utils"
)

// TimeRule restricts when a checklist item counts as due. An item with no
// rule is due every day.
type TimeRule struct {
	Days  []time.Weekday `json:"days"`  // 0 = Sunday ... 6 = Saturday
	Start string         `json:"start"` // HH:MM
	End   string         `json:"end"`   // HH:MM, window may wrap midnight
}

func (r *TimeRule) Validate() error {
	if len(r.Days) == 0 {
		return fmt.Errorf("time rule must include at least one weekday")
	}
	for _, d := range r.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday in time rule: %d", d)
		}
	}
	if !utils.ValidateTimeFormat(r.Start) {
		return fmt.Errorf("invalid time rule start (expected HH:MM): %q", r.Start)
	}
	if !utils.ValidateTimeFormat(r.End) {
		return fmt.Errorf("invalid time rule end (expected HH:MM): %q", r.End)
	}
	return nil
}

// ChecklistItem is one essential item on the departure checklist.
type ChecklistItem struct {
	ID        string    `json:"id"`
	Emoji     string    `json:"emoji"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
	TimeRule  *TimeRule `json:"time_rule,omitempty"`
	IsActive  bool      `json:"is_active"`
}

func (i *ChecklistItem) Validate() error {
	if i.Label == "" {
		return fmt.Errorf("item label cannot be empty")
	}
	if i.TimeRule != nil {
		if err := i.TimeRule.Validate(); err != nil {
			return fmt.Errorf("item %q: %w", i.Label, err)
		}
	}
	return nil
}

// DefaultChecklistItems is the starter checklist seeded on first read. The
// fixed ids predate UUID item ids and are kept stable so existing check
// state survives upgrades.
func DefaultChecklistItems() []ChecklistItem {
	return []ChecklistItem{
		{ID: "1", Emoji: "🔑", Label: "Keys", SortOrder: 0, IsActive: true},
		{ID: "2", Emoji: "📱", Label: "Phone", SortOrder: 1, IsActive: true},
		{ID: "3", Emoji: "💳", Label: "Wallet", SortOrder: 2, IsActive: true},
		{ID: "4", Emoji: "🎒", Label: "Bag", SortOrder: 3, IsActive: true},
		{ID: "5", Emoji: "🌧️", Label: "Umbrella", SortOrder: 4, IsActive: true},
	}
}

// DailyChecks is the per-day checked state. If LastResetDate is not today the
// checked set is stale and must be treated as empty (lazy rollover on read).
type DailyChecks struct {
	CheckedIDs    []string `json:"checked_ids"`
	LastResetDate string   `json:"last_reset_date"` // YYYY-MM-DD
}

// DefaultDailyChecks returns an empty check state with no reset date, which
// forces a rollover on first load.
func DefaultDailyChecks() DailyChecks {
	return DailyChecks{CheckedIDs: []string{}}
}

// Checked reports whether the given item id is in the checked set.
func (c *DailyChecks) Checked(id string) bool {
	for _, cid := range c.CheckedIDs {
		if cid == id {
			return true
		}
	}
	return false
}
