package constants

const (
	// Storage record keys. Each key holds one JSON-encoded record.
	KeyTriggerSettings      = "doorcheck:trigger"
	KeyNotificationSettings = "doorcheck:notifications"
	KeyChecklistItems       = "doorcheck:items"
	KeyDailyChecks          = "doorcheck:checks"
	KeyStreak               = "doorcheck:streak"
	KeyStreakReminder       = "doorcheck:streakReminder"

	// Trigger defaults
	DefaultActiveStart     = "06:00"
	DefaultActiveEnd       = "22:00"
	DefaultCooldownMinutes = 120
	DefaultRadiusMeters    = 150.0

	// Notification defaults
	DefaultDepartureNotifications = true
	DefaultStreakReminders        = true
	DefaultQuietHoursStart        = "22:00"
	DefaultQuietHoursEnd          = "07:00"
)
