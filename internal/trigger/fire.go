// Package trigger contains the three departure-detection execution contexts
// (foreground poller, background task, geofence handler) and the fire action
// they share.
//
// The contexts are not mutually exclusive at the OS level and share one
// persisted TriggerSettings record with no cross-process lock. Every path
// therefore re-derives its decision from freshly loaded state and leans on
// the cooldown and dedup windows for correctness; last write wins.
package trigger

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/doorcheck/internal/models"
	"github.com/julianstephens/doorcheck/internal/storage"
)

// Dispatcher delivers the departure notification. Delivery-side gating
// (quiet hours, per-type toggles) happens behind this interface; a
// suppressed delivery returns nil so the trigger still records the fire.
type Dispatcher interface {
	SendDeparture(ctx context.Context) error
}

// fire performs the shared fire action: dispatch the notification, then
// stamp and persist lastTriggeredAt. The two steps are not transactional;
// process death between them can cost one duplicate notification after
// recovery, which is accepted.
func fire(ctx context.Context, store storage.Provider, d Dispatcher, settings models.TriggerSettings, now time.Time) error {
	if err := d.SendDeparture(ctx); err != nil {
		return fmt.Errorf("failed to dispatch departure notification: %w", err)
	}

	stamped := now
	settings.LastTriggeredAt = &stamped
	if err := storage.SaveTriggerSettings(store, settings); err != nil {
		return fmt.Errorf("failed to persist trigger timestamp: %w", err)
	}
	return nil
}
