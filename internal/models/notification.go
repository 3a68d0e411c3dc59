package models

import (
	"fmt"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/utils"
)

// NotificationSettings controls user-facing delivery, independent of the
// trigger policy. Quiet hours use the same midnight-wrap rule as active hours
// but with an exclusive end: time == QuietHoursEnd is not quiet.
type NotificationSettings struct {
	DepartureNotifications bool   `json:"departure_notifications"`
	StreakReminders        bool   `json:"streak_reminders"`
	QuietHoursStart        string `json:"quiet_hours_start"` // HH:MM
	QuietHoursEnd          string `json:"quiet_hours_end"`   // HH:MM
}

// DefaultNotificationSettings returns the out-of-box notification configuration.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		DepartureNotifications: constants.DefaultDepartureNotifications,
		StreakReminders:        constants.DefaultStreakReminders,
		QuietHoursStart:        constants.DefaultQuietHoursStart,
		QuietHoursEnd:          constants.DefaultQuietHoursEnd,
	}
}

func (s *NotificationSettings) Validate() error {
	if !utils.ValidateTimeFormat(s.QuietHoursStart) {
		return fmt.Errorf("invalid quiet hours start time (expected HH:MM): %q", s.QuietHoursStart)
	}
	if !utils.ValidateTimeFormat(s.QuietHoursEnd) {
		return fmt.Errorf("invalid quiet hours end time (expected HH:MM): %q", s.QuietHoursEnd)
	}
	return nil
}

// StreakReminder is the single pending end-of-day reminder record.
type StreakReminder struct {
	Date string `json:"date"` // YYYY-MM-DD the reminder is for
	At   string `json:"at"`   // HH:MM delivery time
}
