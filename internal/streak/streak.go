// Package streak tracks consecutive fully-checked days.
package streak

import (
	"time"

	"github.com/julianstephens/doorcheck/internal/models"
	"github.com/julianstephens/doorcheck/internal/storage"
	"github.com/julianstephens/doorcheck/internal/utils"
)

// Engine wraps a storage provider with streak accounting.
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

// Get returns the current streak record, normalized.
func (e *Engine) Get() (models.StreakRecord, error) {
	return storage.LoadStreak(e.store)
}

// RecordCheck records a completed checklist for today. Same-day calls after
// the first are no-ops, a check the day after the last one extends the
// streak, and any gap resets the current streak to 1. LongestStreak never
// decreases.
func (e *Engine) RecordCheck() (models.StreakRecord, error) {
	record, err := storage.LoadStreak(e.store)
	if err != nil {
		return models.StreakRecord{}, err
	}

	now := e.now()
	today := utils.Today(now)

	if record.LastCheckDate == today {
		return record, nil
	}

	if record.LastCheckDate == utils.Yesterday(now) {
		record.CurrentStreak++
	} else {
		record.CurrentStreak = 1
	}
	if record.CurrentStreak > record.LongestStreak {
		record.LongestStreak = record.CurrentStreak
	}
	record.LastCheckDate = today
	record.CheckedDays = append(record.CheckedDays, today)
	record.Normalize()

	if err := storage.SaveStreak(e.store, record); err != nil {
		return models.StreakRecord{}, err
	}
	return record, nil
}
