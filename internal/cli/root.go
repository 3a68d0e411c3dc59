package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/geofence"
	"github.com/julianstephens/doorcheck/internal/storage"
	"github.com/julianstephens/doorcheck/internal/trigger"
)

type Context struct {
	Store storage.Provider
}

// SidecarPath resolves a file that lives next to the database: the task
// registry, geofence region, and agent position file all do.
func (c *Context) SidecarPath(name string) string {
	return filepath.Join(filepath.Dir(c.Store.GetConfigPath()), name)
}

// TriggerManager builds the manager that reconciles OS-facing registrations
// with the persisted settings.
func (c *Context) TriggerManager() *trigger.Manager {
	registrar := &trigger.FileRegistrar{Path: c.SidecarPath(constants.TaskRegistryFileName)}
	geo := &geofence.FileService{Path: c.SidecarPath(constants.GeofenceRegionFileName)}
	return trigger.NewManager(c.Store, registrar, geo)
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// FormatWeekdays renders a weekday list the way ParseWeekdays accepts it.
func FormatWeekdays(days []time.Weekday) string {
	var parts []string
	for _, d := range days {
		parts = append(parts, strings.ToLower(d.String()[:3]))
	}
	return strings.Join(parts, ",")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
