package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/geofence"
	"github.com/julianstephens/doorcheck/internal/logger"
	"github.com/julianstephens/doorcheck/internal/network"
	"github.com/julianstephens/doorcheck/internal/notify"
	"github.com/julianstephens/doorcheck/internal/storage"
	"github.com/julianstephens/doorcheck/internal/trigger"
)

// WatchCmd is the long-running foreground mode: the WiFi poller plus, when a
// home region is configured, the in-process geofence monitor. It runs until
// interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Run(appCtx *Context) error {
	settings, err := storage.LoadTriggerSettings(appCtx.Store)
	if err != nil {
		return fmt.Errorf("failed to load trigger settings: %w", err)
	}
	if !settings.Enabled {
		return fmt.Errorf("trigger is disabled; run 'doorcheck trigger enable' first")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := notify.NewDispatcher(appCtx.Store)
	if !dispatcher.Available() {
		logger.Warn("Notification agent not running; fires will be recorded but not delivered")
	}

	var wg sync.WaitGroup

	poller := trigger.NewPoller(appCtx.Store, network.NewSysfsMonitor(), dispatcher)
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(ctx)
	}()

	if settings.GeofenceConfigured() {
		region := geofence.Region{
			Latitude:     *settings.HomeLatitude,
			Longitude:    *settings.HomeLongitude,
			RadiusMeters: settings.HomeRadiusMeters,
		}
		positions := &geofence.FilePosition{Path: appCtx.SidecarPath(constants.PositionFileName)}
		monitor := geofence.NewPollingMonitor(region, positions, constants.GeofencePollInterval,
			func(ctx context.Context, ev geofence.Event) {
				trigger.HandleGeofenceEvent(ctx, appCtx.Store, dispatcher, ev, time.Now)
			})
		wg.Add(1)
		go func() {
			defer wg.Done()
			monitor.Run(ctx)
		}()
		fmt.Println("Watching WiFi and geofence. Press Ctrl-C to stop.")
	} else {
		fmt.Println("Watching WiFi. Press Ctrl-C to stop.")
	}

	<-ctx.Done()
	wg.Wait()
	fmt.Println("Stopped.")
	return nil
}
