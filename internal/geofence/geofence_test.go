package geofence

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestRegionContains(t *testing.T) {
	// Home at Alexanderplatz, radius 150m.
	home := Region{Latitude: 52.5219, Longitude: 13.4132, RadiusMeters: 150}

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"exact center", 52.5219, 13.4132, true},
		{"about 100m away", 52.5228, 13.4132, true},
		{"about 500m away", 52.5264, 13.4132, false},
		{"different city", 48.1351, 11.5820, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := home.Contains(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestFilePosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position.json")

	t.Run("missing file errors", func(t *testing.T) {
		p := &FilePosition{Path: path}
		if _, _, err := p.Current(context.Background()); err == nil {
			t.Error("expected error for missing position file")
		}
	})

	t.Run("reads coordinates", func(t *testing.T) {
		if err := os.WriteFile(path, []byte(`{"latitude": 52.5, "longitude": 13.4}`), 0644); err != nil {
			t.Fatal(err)
		}
		p := &FilePosition{Path: path}
		lat, lon, err := p.Current(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lat != 52.5 || lon != 13.4 {
			t.Errorf("expected (52.5, 13.4), got (%v, %v)", lat, lon)
		}
	})

	t.Run("garbage errors", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
			t.Fatal(err)
		}
		p := &FilePosition{Path: path}
		if _, _, err := p.Current(context.Background()); err == nil {
			t.Error("expected error for unparsable position file")
		}
	})
}

func TestFileService(t *testing.T) {
	svc := &FileService{Path: filepath.Join(t.TempDir(), "geofence.json")}

	if _, active, err := svc.Active(); err != nil || active {
		t.Fatalf("expected no active region, got active=%v err=%v", active, err)
	}

	region := Region{Latitude: 52.52, Longitude: 13.405, RadiusMeters: 150}
	if err := svc.Start(region); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	got, active, err := svc.Active()
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if !active || got != region {
		t.Errorf("expected %+v active, got %+v (active=%v)", region, got, active)
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if _, active, _ := svc.Active(); active {
		t.Error("expected region withdrawn after stop")
	}
	// Stop on a stopped service is a no-op.
	if err := svc.Stop(); err != nil {
		t.Errorf("second stop should succeed, got %v", err)
	}
}

type scriptedPositions struct {
	mu       sync.Mutex
	lat, lon float64
	fail     bool
}

func (s *scriptedPositions) Current(ctx context.Context) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, 0, os.ErrNotExist
	}
	return s.lat, s.lon, nil
}

func (s *scriptedPositions) set(lat, lon float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lat, s.lon = lat, lon
}

func TestPollingMonitorEmitsTransitions(t *testing.T) {
	home := Region{Latitude: 52.5219, Longitude: 13.4132, RadiusMeters: 150}
	positions := &scriptedPositions{lat: home.Latitude, lon: home.Longitude}

	var mu sync.Mutex
	var events []Event
	handler := func(ctx context.Context, ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}

	monitor := NewPollingMonitor(home, positions, 5*time.Millisecond, handler)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		monitor.Run(ctx)
	}()

	countEvents := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(events)
	}

	// Baseline inside; no event yet.
	time.Sleep(25 * time.Millisecond)
	if countEvents() != 0 {
		t.Fatalf("expected no event for the baseline sample, got %d", countEvents())
	}

	// Walk out.
	positions.set(52.5264, 13.4132)
	deadline := time.Now().Add(time.Second)
	for countEvents() < 1 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}

	// Come back home.
	positions.set(home.Latitude, home.Longitude)
	deadline = time.Now().Add(time.Second)
	for countEvents() < 2 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(events) < 2 {
		t.Fatalf("expected exit then enter, got %v", events)
	}
	if events[0].Type != EventExit {
		t.Errorf("expected first event exit, got %s", events[0].Type)
	}
	if events[1].Type != EventEnter {
		t.Errorf("expected second event enter, got %s", events[1].Type)
	}
}
