package constants

import "time"

const (
	// Foreground poller tuning
	PollInterval  = 10 * time.Second
	DebounceDelay = 30 * time.Second

	// DedupWindow is the fixed window during which a second trigger source
	// (WiFi vs geofence) is treated as the same physical departure.
	DedupWindow = 5 * time.Minute

	// MinBackgroundInterval is the minimum wake cadence hint passed to the OS
	// scheduler when registering the departure check.
	MinBackgroundInterval = 15 * time.Minute

	// GeofencePollInterval is the sampling cadence of the in-process geofence
	// monitor used by `doorcheck watch`.
	GeofencePollInterval = 30 * time.Second

	// Background task names. These must be stable across releases since the OS
	// scheduler looks tasks up by name.
	DepartureTaskName      = "doorcheck-departure-check"
	StreakReminderTaskName = "doorcheck-streak-reminder"

	// TaskRegistryFileName is the file-backed task registration record kept
	// next to the database.
	TaskRegistryFileName = "tasks.json"

	// PositionFileName is where the companion agent drops the last known
	// device position for the polling geofence monitor.
	PositionFileName = "position.json"

	// GeofenceRegionFileName is the registered home region, also kept next to
	// the database. Absence means geofence monitoring is off.
	GeofenceRegionFileName = "geofence.json"
)
