package models

import "sort"

// StreakRecord tracks consecutive fully-checked days.
//
// TotalChecks is always recomputed from CheckedDays and never trusted from
// storage; an older release stored it independently and let the two drift.
type StreakRecord struct {
	CurrentStreak int      `json:"current_streak"`
	LongestStreak int      `json:"longest_streak"`
	LastCheckDate string   `json:"last_check_date,omitempty"` // YYYY-MM-DD
	TotalChecks   int      `json:"total_checks"`
	CheckedDays   []string `json:"checked_days"`
}

// DefaultStreakRecord returns an empty streak.
func DefaultStreakRecord() StreakRecord {
	return StreakRecord{CheckedDays: []string{}}
}

// Normalize deduplicates and sorts CheckedDays and recomputes TotalChecks
// from the set. Called on every load so records written by older schemas
// (missing checked_days, stale total_checks) read cleanly.
func (s *StreakRecord) Normalize() {
	seen := make(map[string]struct{}, len(s.CheckedDays))
	days := make([]string, 0, len(s.CheckedDays))
	for _, d := range s.CheckedDays {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Strings(days)
	s.CheckedDays = days
	s.TotalChecks = len(days)
}

// HasCheckedDay reports whether the given day key is in the checked set.
func (s *StreakRecord) HasCheckedDay(day string) bool {
	for _, d := range s.CheckedDays {
		if d == day {
			return true
		}
	}
	return false
}
