package trigger

import (
	"context"
	"time"

	"github.com/julianstephens/doorcheck/internal/logger"
	"github.com/julianstephens/doorcheck/internal/network"
	"github.com/julianstephens/doorcheck/internal/policy"
	"github.com/julianstephens/doorcheck/internal/storage"
)

// Outcome is what a background invocation reports back to the OS scheduler.
type Outcome string

const (
	// OutcomeNewData means the check fired a departure notification.
	OutcomeNewData Outcome = "new-data"
	// OutcomeNoData means conditions were not met; nothing happened.
	OutcomeNoData Outcome = "no-data"
	// OutcomeFailed means the check hit an error. Reported distinctly so the
	// scheduler can back off, but never propagated as a panic or error.
	OutcomeFailed Outcome = "failed"
)

// RunDepartureCheck is the self-contained background evaluation invoked by
// the OS scheduler. Each call loads settings fresh, takes a single
// connectivity snapshot (no debounce; the coarse wake cadence stands in for
// one), and fires if the device is off WiFi and policy allows.
func RunDepartureCheck(ctx context.Context, store storage.Provider, monitor network.Monitor, d Dispatcher, now func() time.Time) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Departure check panicked", "panic", r)
			outcome = OutcomeFailed
		}
	}()

	settings, err := storage.LoadTriggerSettings(store)
	if err != nil {
		logger.Error("Departure check failed to load settings", "error", err)
		return OutcomeFailed
	}

	t := now()
	if !settings.Enabled {
		return OutcomeNoData
	}
	if !policy.WithinActiveHours(settings.ActiveStart, settings.ActiveEnd, t) {
		return OutcomeNoData
	}
	if !policy.CooldownElapsed(settings.LastTriggeredAt, settings.CooldownMinutes, t) {
		return OutcomeNoData
	}

	state, err := monitor.State(ctx)
	if err != nil {
		logger.Error("Departure check failed to read connectivity", "error", err)
		return OutcomeFailed
	}

	if state.OnWifi() {
		return OutcomeNoData
	}

	if err := fire(ctx, store, d, settings, t); err != nil {
		logger.Error("Departure check failed to fire", "error", err)
		return OutcomeFailed
	}
	return OutcomeNewData
}
