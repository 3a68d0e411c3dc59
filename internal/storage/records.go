package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/logger"
	"github.com/julianstephens/doorcheck/internal/models"
)

// loadRecord decodes the blob at key over a copy of defaults. json.Unmarshal
// only overwrites fields present in the blob, giving the field-by-field merge
// that keeps partially written or older-schema records readable. Decoding
// happens on a scratch copy so a blob that errors mid-decode (a type mismatch
// on a later field) never leaks a half-merged record: corrupt blobs come back
// as the untouched defaults with a warning rather than failing the caller.
func loadRecord[T any](p Provider, key string, defaults T) (T, error) {
	raw, ok, err := p.Get(key)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok || raw == "" {
		return defaults, nil
	}

	merged := defaults
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		logger.Warn("Discarding unparsable record, using defaults", "key", key, "error", err)
		return defaults, nil
	}
	return merged, nil
}

func saveRecord(p Provider, key string, in interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}
	return p.Set(key, string(data))
}

// LoadTriggerSettings reads the trigger configuration, merged over defaults.
func LoadTriggerSettings(p Provider) (models.TriggerSettings, error) {
	return loadRecord(p, constants.KeyTriggerSettings, models.DefaultTriggerSettings())
}

func SaveTriggerSettings(p Provider, settings models.TriggerSettings) error {
	return saveRecord(p, constants.KeyTriggerSettings, settings)
}

// LoadNotificationSettings reads the notification configuration, merged over
// defaults.
func LoadNotificationSettings(p Provider) (models.NotificationSettings, error) {
	return loadRecord(p, constants.KeyNotificationSettings, models.DefaultNotificationSettings())
}

func SaveNotificationSettings(p Provider, settings models.NotificationSettings) error {
	return saveRecord(p, constants.KeyNotificationSettings, settings)
}

// LoadChecklistItems reads the checklist, seeding the starter items when no
// record exists yet.
func LoadChecklistItems(p Provider) ([]models.ChecklistItem, error) {
	raw, ok, err := p.Get(constants.KeyChecklistItems)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return models.DefaultChecklistItems(), nil
	}

	var items []models.ChecklistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Discarding unparsable checklist record, using defaults", "error", err)
		return models.DefaultChecklistItems(), nil
	}
	return items, nil
}

func SaveChecklistItems(p Provider, items []models.ChecklistItem) error {
	return saveRecord(p, constants.KeyChecklistItems, items)
}

// LoadDailyChecks reads today's checked state as persisted. Callers go
// through the checklist engine, which applies the lazy day rollover.
func LoadDailyChecks(p Provider) (models.DailyChecks, error) {
	checks, err := loadRecord(p, constants.KeyDailyChecks, models.DefaultDailyChecks())
	if err != nil {
		return models.DailyChecks{}, err
	}
	if checks.CheckedIDs == nil {
		checks.CheckedIDs = []string{}
	}
	return checks, nil
}

func SaveDailyChecks(p Provider, checks models.DailyChecks) error {
	return saveRecord(p, constants.KeyDailyChecks, checks)
}

// LoadStreak reads the streak record and normalizes it so the
// totalChecks == |checkedDays| invariant holds regardless of what was
// persisted.
func LoadStreak(p Provider) (models.StreakRecord, error) {
	streak, err := loadRecord(p, constants.KeyStreak, models.DefaultStreakRecord())
	if err != nil {
		return models.StreakRecord{}, err
	}
	streak.Normalize()
	return streak, nil
}

func SaveStreak(p Provider, streak models.StreakRecord) error {
	streak.Normalize()
	return saveRecord(p, constants.KeyStreak, streak)
}

// LoadStreakReminder returns the pending end-of-day reminder, if any.
func LoadStreakReminder(p Provider) (*models.StreakReminder, error) {
	raw, ok, err := p.Get(constants.KeyStreakReminder)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var reminder models.StreakReminder
	if err := json.Unmarshal([]byte(raw), &reminder); err != nil {
		logger.Warn("Discarding unparsable streak reminder record", "error", err)
		return nil, nil
	}
	return &reminder, nil
}

func SaveStreakReminder(p Provider, reminder models.StreakReminder) error {
	return saveRecord(p, constants.KeyStreakReminder, reminder)
}

func DeleteStreakReminder(p Provider) error {
	return p.Delete(constants.KeyStreakReminder)
}
