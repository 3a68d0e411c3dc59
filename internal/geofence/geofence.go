// Package geofence models the home region and the entry/exit transition
// events the trigger consumes. Only transitions are reported; there is no
// track logging or continuous location stream.
package geofence

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/julianstephens/doorcheck/internal/logger"
)

// EventType is a region transition direction.
type EventType string

const (
	EventEnter EventType = "enter"
	EventExit  EventType = "exit"
)

// Event is a single region transition.
type Event struct {
	Type EventType
	At   time.Time
}

// Region is a circular geofence around the home coordinate.
type Region struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

const earthRadiusMeters = 6371000.0

// distanceMeters is the haversine great-circle distance.
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180.0
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Contains reports whether the coordinate falls inside the region.
func (r Region) Contains(lat, lon float64) bool {
	return distanceMeters(r.Latitude, r.Longitude, lat, lon) <= r.RadiusMeters
}

// PositionProvider yields the device's last known coordinate. A failed read
// skips the sampling cycle.
type PositionProvider interface {
	Current(ctx context.Context) (lat, lon float64, err error)
}

// FilePosition reads the position the companion agent drops as JSON
// ({"latitude": .., "longitude": ..}) under the config directory.
type FilePosition struct {
	Path string
}

func (f *FilePosition) Current(ctx context.Context) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read position file: %w", err)
	}

	var pos struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &pos); err != nil {
		return 0, 0, fmt.Errorf("failed to parse position file: %w", err)
	}
	return pos.Latitude, pos.Longitude, nil
}

// Handler consumes region transition events.
type Handler func(ctx context.Context, ev Event)

// PollingMonitor samples a PositionProvider on a fixed cadence and emits
// Enter/Exit events on inside/outside transitions. It is the in-process
// stand-in for the OS location subsystem used by `doorcheck watch`; the
// out-of-process path is the geofence-event CLI callback.
type PollingMonitor struct {
	Region    Region
	Positions PositionProvider
	Interval  time.Duration
	Handler   Handler

	now func() time.Time
}

func NewPollingMonitor(region Region, positions PositionProvider, interval time.Duration, handler Handler) *PollingMonitor {
	return &PollingMonitor{
		Region:    region,
		Positions: positions,
		Interval:  interval,
		Handler:   handler,
		now:       time.Now,
	}
}

// Run samples until ctx is cancelled. The first successful sample only
// establishes the inside/outside baseline; no event is emitted for it.
func (m *PollingMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	var inside, known bool

	sample := func() {
		lat, lon, err := m.Positions.Current(ctx)
		if err != nil {
			// Position unavailable (agent not running, permission revoked).
			// Skip this cycle; a later one will retry.
			logger.Debug("Geofence position read failed, skipping cycle", "error", err)
			return
		}

		nowInside := m.Region.Contains(lat, lon)
		if known && nowInside != inside {
			ev := Event{Type: EventEnter, At: m.now()}
			if !nowInside {
				ev.Type = EventExit
			}
			m.Handler(ctx, ev)
		}
		inside = nowInside
		known = true
	}

	sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample()
		}
	}
}
