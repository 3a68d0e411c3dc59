package geofence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Service is the home-region registration surface. Starting it makes the
// region visible to whatever produces transition events (the in-process
// polling monitor, or the companion agent invoking the geofence-event
// callback); stopping it withdraws the region.
type Service interface {
	Start(region Region) error
	Stop() error
	// Active returns the registered region, if any.
	Active() (Region, bool, error)
}

type regionFile struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// FileService registers the region by dropping a JSON file next to the
// database. The companion agent watches this file to know which region to
// monitor; absence means monitoring is off.
type FileService struct {
	Path string
}

func (s *FileService) Start(region Region) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create geofence config directory: %w", err)
	}

	data, err := json.MarshalIndent(regionFile{
		Latitude:     region.Latitude,
		Longitude:    region.Longitude,
		RadiusMeters: region.RadiusMeters,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode geofence region: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write geofence region: %w", err)
	}
	return nil
}

func (s *FileService) Stop() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove geofence region: %w", err)
	}
	return nil
}

func (s *FileService) Active() (Region, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Region{}, false, nil
		}
		return Region{}, false, fmt.Errorf("failed to read geofence region: %w", err)
	}

	var rf regionFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return Region{}, false, fmt.Errorf("failed to parse geofence region: %w", err)
	}
	return Region{Latitude: rf.Latitude, Longitude: rf.Longitude, RadiusMeters: rf.RadiusMeters}, true, nil
}
