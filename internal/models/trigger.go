package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/utils"
)

// TriggerSettings is the single global departure-trigger configuration record.
//
// LastTriggeredAt is shared by every trigger source (WiFi poller, background
// task, geofence) and is the only timestamp consulted for both the cooldown
// and the deduplication window. It must never move backwards.
type TriggerSettings struct {
	Enabled bool `json:"enabled"`

	// HomeSSID is an informational label only; connectivity checks report
	// "on WiFi", not SSID identity.
	HomeSSID string `json:"home_ssid"`

	ActiveStart     string     `json:"active_start"` // HH:MM
	ActiveEnd       string     `json:"active_end"`   // HH:MM, window may wrap midnight
	CooldownMinutes int        `json:"cooldown_minutes"`
	LastTriggeredAt *time.Time `json:"last_triggered_at,omitempty"`

	GeofenceEnabled  bool     `json:"geofence_enabled"`
	HomeLatitude     *float64 `json:"home_latitude,omitempty"`
	HomeLongitude    *float64 `json:"home_longitude,omitempty"`
	HomeRadiusMeters float64  `json:"home_radius_meters"`
}

// DefaultTriggerSettings returns the out-of-box trigger configuration.
func DefaultTriggerSettings() TriggerSettings {
	return TriggerSettings{
		Enabled:          false,
		HomeSSID:         "",
		ActiveStart:      constants.DefaultActiveStart,
		ActiveEnd:        constants.DefaultActiveEnd,
		CooldownMinutes:  constants.DefaultCooldownMinutes,
		LastTriggeredAt:  nil,
		GeofenceEnabled:  false,
		HomeLatitude:     nil,
		HomeLongitude:    nil,
		HomeRadiusMeters: constants.DefaultRadiusMeters,
	}
}

func (s *TriggerSettings) Validate() error {
	if !utils.ValidateTimeFormat(s.ActiveStart) {
		return fmt.Errorf("invalid active start time (expected HH:MM): %q", s.ActiveStart)
	}
	if !utils.ValidateTimeFormat(s.ActiveEnd) {
		return fmt.Errorf("invalid active end time (expected HH:MM): %q", s.ActiveEnd)
	}
	if s.CooldownMinutes < 0 {
		return fmt.Errorf("cooldown minutes must be >= 0, got %d", s.CooldownMinutes)
	}
	if s.HomeRadiusMeters <= 0 {
		return fmt.Errorf("geofence radius must be positive, got %v", s.HomeRadiusMeters)
	}
	if s.HomeLatitude != nil && (*s.HomeLatitude < -90 || *s.HomeLatitude > 90) {
		return fmt.Errorf("latitude out of range: %v", *s.HomeLatitude)
	}
	if s.HomeLongitude != nil && (*s.HomeLongitude < -180 || *s.HomeLongitude > 180) {
		return fmt.Errorf("longitude out of range: %v", *s.HomeLongitude)
	}
	return nil
}

// GeofenceConfigured reports whether geofencing should be active: the master
// switch and the geofence switch are both on and a home coordinate is set.
func (s *TriggerSettings) GeofenceConfigured() bool {
	return s.Enabled && s.GeofenceEnabled && s.HomeLatitude != nil && s.HomeLongitude != nil
}
