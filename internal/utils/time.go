package utils

import (
	"time"

	"github.com/julianstephens/doorcheck/internal/constants"
)

// DateKey formats a time as a local calendar day key (YYYY-MM-DD).
//
// This is the single "what day is it" primitive shared by the checklist
// rollover and the streak engine; both must agree on day boundaries.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the current local day key.
func Today(now time.Time) string {
	return DateKey(now)
}

// Yesterday returns the day key for the calendar day before now.
func Yesterday(now time.Time) string {
	return DateKey(now.AddDate(0, 0, -1))
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of
// minutes from midnight (0-1439).
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesOfDay returns the local wall-clock minutes from midnight for t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}
