package models

import (
	"testing"
	"time"
)

func TestTriggerSettingsValidate(t *testing.T) {
	badLat := 95.0
	badLon := -200.0

	tests := []struct {
		name    string
		mutate  func(*TriggerSettings)
		wantErr bool
	}{
		{"defaults are valid", func(s *TriggerSettings) {}, false},
		{"bad active start", func(s *TriggerSettings) { s.ActiveStart = "25:00" }, true},
		{"bad active end", func(s *TriggerSettings) { s.ActiveEnd = "nope" }, true},
		{"negative cooldown", func(s *TriggerSettings) { s.CooldownMinutes = -1 }, true},
		{"zero cooldown ok", func(s *TriggerSettings) { s.CooldownMinutes = 0 }, false},
		{"zero radius", func(s *TriggerSettings) { s.HomeRadiusMeters = 0 }, true},
		{"latitude out of range", func(s *TriggerSettings) { s.HomeLatitude = &badLat }, true},
		{"longitude out of range", func(s *TriggerSettings) { s.HomeLongitude = &badLon }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultTriggerSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGeofenceConfigured(t *testing.T) {
	lat, lon := 52.52, 13.405

	s := DefaultTriggerSettings()
	if s.GeofenceConfigured() {
		t.Error("defaults should not be geofence-configured")
	}

	s.Enabled = true
	s.GeofenceEnabled = true
	if s.GeofenceConfigured() {
		t.Error("missing coordinates should not count as configured")
	}

	s.HomeLatitude = &lat
	s.HomeLongitude = &lon
	if !s.GeofenceConfigured() {
		t.Error("expected configured with both switches on and a coordinate")
	}

	s.Enabled = false
	if s.GeofenceConfigured() {
		t.Error("master switch off should disable geofencing")
	}
}

func TestNotificationSettingsValidate(t *testing.T) {
	s := DefaultNotificationSettings()
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}

	s.QuietHoursStart = "24:30"
	if err := s.Validate(); err == nil {
		t.Error("expected error for bad quiet hours start")
	}
}

func TestTimeRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    TimeRule
		wantErr bool
	}{
		{"valid", TimeRule{Days: []time.Weekday{time.Monday}, Start: "07:00", End: "09:00"}, false},
		{"no days", TimeRule{Start: "07:00", End: "09:00"}, true},
		{"bad start", TimeRule{Days: []time.Weekday{time.Monday}, Start: "7am", End: "09:00"}, true},
		{"bad end", TimeRule{Days: []time.Weekday{time.Monday}, Start: "07:00", End: "99:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestChecklistItemValidate(t *testing.T) {
	item := ChecklistItem{ID: "x", Label: ""}
	if err := item.Validate(); err == nil {
		t.Error("expected error for empty label")
	}

	item.Label = "Keys"
	if err := item.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStreakNormalize(t *testing.T) {
	record := StreakRecord{
		TotalChecks: 42,
		CheckedDays: []string{"2026-03-02", "2026-03-01", "2026-03-02", "", "2026-02-28"},
	}
	record.Normalize()

	want := []string{"2026-02-28", "2026-03-01", "2026-03-02"}
	if len(record.CheckedDays) != len(want) {
		t.Fatalf("expected %d days, got %v", len(want), record.CheckedDays)
	}
	for i, d := range want {
		if record.CheckedDays[i] != d {
			t.Errorf("day %d: expected %s, got %s", i, d, record.CheckedDays[i])
		}
	}
	if record.TotalChecks != 3 {
		t.Errorf("expected totalChecks 3, got %d", record.TotalChecks)
	}
}

func TestDailyChecksChecked(t *testing.T) {
	checks := DailyChecks{CheckedIDs: []string{"1", "3"}}
	if !checks.Checked("1") || checks.Checked("2") {
		t.Errorf("unexpected membership results for %v", checks.CheckedIDs)
	}
}
