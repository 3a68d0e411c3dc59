// Package policy holds the pure departure-gating decision functions.
//
// Nothing here performs I/O or mutates state, so every execution context
// (foreground poller, background task, geofence callback) can evaluate the
// same rules against freshly loaded settings. All window comparisons operate
// on local wall-clock minutes of day (0-1439).
package policy

import (
	"time"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/models"
	"github.com/julianstephens/doorcheck/internal/utils"
)

// WithinActiveHours reports whether now falls inside the daily firing window.
// A same-day window (start <= end) is inclusive at both ends. A window that
// wraps midnight (start > end) is active whenever now >= start OR now <= end,
// again including both boundary values.
//
// Malformed HH:MM input evaluates to false rather than erroring; trigger
// paths treat an unreadable window as "not active".
func WithinActiveHours(start, end string, now time.Time) bool {
	startMins, err := utils.ParseTimeToMinutes(start)
	if err != nil {
		return false
	}
	endMins, err := utils.ParseTimeToMinutes(end)
	if err != nil {
		return false
	}
	mins := utils.MinutesOfDay(now)

	if startMins <= endMins {
		return mins >= startMins && mins <= endMins
	}
	return mins >= startMins || mins <= endMins
}

// WithinQuietHours reports whether now falls inside the notification
// suppression window. Quiet hours wrap midnight the same way active hours do
// but the end is exclusive: time == end is NOT quiet. The asymmetry with
// WithinActiveHours is intentional and load-bearing.
func WithinQuietHours(start, end string, now time.Time) bool {
	startMins, err := utils.ParseTimeToMinutes(start)
	if err != nil {
		return false
	}
	endMins, err := utils.ParseTimeToMinutes(end)
	if err != nil {
		return false
	}
	mins := utils.MinutesOfDay(now)

	if startMins <= endMins {
		return mins >= startMins && mins < endMins
	}
	return mins >= startMins || mins < endMins
}

// CooldownElapsed reports whether enough time has passed since the last fire.
// A nil lastTriggeredAt always elapses; landing exactly on the cooldown
// boundary counts as elapsed.
func CooldownElapsed(lastTriggeredAt *time.Time, cooldownMinutes int, now time.Time) bool {
	if lastTriggeredAt == nil {
		return true
	}
	return now.Sub(*lastTriggeredAt) >= time.Duration(cooldownMinutes)*time.Minute
}

// WithinDedupWindow reports whether the last fire happened within the fixed
// five-minute deduplication window. This is what keeps a WiFi-loss fire and a
// geofence-exit fire for the same walk-out-the-door event from both landing,
// independently of the (normally much coarser) cooldown.
func WithinDedupWindow(lastTriggeredAt *time.Time, now time.Time) bool {
	if lastTriggeredAt == nil {
		return false
	}
	return now.Sub(*lastTriggeredAt) < constants.DedupWindow
}

// ShouldFireDeparture is the common gate shared by all trigger sources:
// enabled, inside active hours, cooldown elapsed, and the signal says the
// device is away from home. The geofence path additionally requires
// !WithinDedupWindow; callers apply that on top.
func ShouldFireDeparture(s models.TriggerSettings, signalOffHome bool, now time.Time) bool {
	if !s.Enabled {
		return false
	}
	if !WithinActiveHours(s.ActiveStart, s.ActiveEnd, now) {
		return false
	}
	if !CooldownElapsed(s.LastTriggeredAt, s.CooldownMinutes, now) {
		return false
	}
	return signalOffHome
}
