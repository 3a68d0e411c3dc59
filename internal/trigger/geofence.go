package trigger

import (
	"context"
	"time"

	"github.com/julianstephens/doorcheck/internal/geofence"
	"github.com/julianstephens/doorcheck/internal/logger"
	"github.com/julianstephens/doorcheck/internal/policy"
	"github.com/julianstephens/doorcheck/internal/storage"
)

// HandleGeofenceEvent is the region-transition callback. Only Exit is
// actionable; Enter is reserved for a future welcome-home feature. On Exit
// it applies the full gate plus the dedup window, which is what stops a
// WiFi-loss fire and a geofence-exit fire for the same physical departure
// from both landing.
//
// Errors are swallowed and logged: an uncaught failure in a location
// callback can get the subscription deregistered by the OS.
func HandleGeofenceEvent(ctx context.Context, store storage.Provider, d Dispatcher, ev geofence.Event, now func() time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Geofence handler panicked", "panic", r)
		}
	}()

	if ev.Type != geofence.EventExit {
		return
	}

	settings, err := storage.LoadTriggerSettings(store)
	if err != nil {
		logger.Error("Geofence handler failed to load settings", "error", err)
		return
	}

	t := now()
	if !settings.Enabled || !settings.GeofenceEnabled {
		return
	}
	if !policy.WithinActiveHours(settings.ActiveStart, settings.ActiveEnd, t) {
		return
	}
	if !policy.CooldownElapsed(settings.LastTriggeredAt, settings.CooldownMinutes, t) {
		return
	}
	if policy.WithinDedupWindow(settings.LastTriggeredAt, t) {
		// Another source already fired for this departure.
		return
	}

	if err := fire(ctx, store, d, settings, t); err != nil {
		logger.Error("Geofence handler failed to fire", "error", err)
	}
}
