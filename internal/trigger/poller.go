package trigger

import (
	"context"
	"time"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/logger"
	"github.com/julianstephens/doorcheck/internal/network"
	"github.com/julianstephens/doorcheck/internal/policy"
	"github.com/julianstephens/doorcheck/internal/storage"
)

// WifiPhase is the foreground poller's debounce state.
type WifiPhase int

const (
	// PhaseOnWifi also covers "not currently known to be away": it is the
	// initial state and the reset target on disable.
	PhaseOnWifi WifiPhase = iota
	// PhaseOffWifiPending means the disconnect debounce timer is armed.
	PhaseOffWifiPending
	// PhaseOffWifiConfirmed means a departure fired; re-entering WiFi is
	// required before another fire can arm.
	PhaseOffWifiConfirmed
)

// Poller is the foreground WiFi sampling loop: a single goroutine that polls
// connectivity on a fixed tick and runs a two-stage disconnect debounce
// (30s timer plus an independent reconfirm read) before consulting the
// policy evaluator. WiFi state flaps during device sleep and network
// handoff; firing on the first blip produces false positives.
type Poller struct {
	store      storage.Provider
	monitor    network.Monitor
	dispatcher Dispatcher

	pollInterval time.Duration
	debounce     time.Duration
	now          func() time.Time

	phase WifiPhase
	// observedOnWifi records whether any poll has seen a connected WiFi
	// link; the debounce only arms for an on-WiFi -> off-WiFi transition,
	// never for a device that was off WiFi from the start.
	observedOnWifi bool
}

func NewPoller(store storage.Provider, monitor network.Monitor, dispatcher Dispatcher) *Poller {
	return &Poller{
		store:        store,
		monitor:      monitor,
		dispatcher:   dispatcher,
		pollInterval: constants.PollInterval,
		debounce:     constants.DebounceDelay,
		now:          time.Now,
	}
}

// Phase exposes the current debounce state for status display.
func (p *Poller) Phase() WifiPhase {
	return p.phase
}

// Run polls until ctx is cancelled. Cancellation stops the tick loop,
// cancels any pending debounce timer, and resets the state machine so no
// stale fire can bleed into a later re-enable.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	var debounceTimer *time.Timer
	var debounceC <-chan time.Time

	stopDebounce := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
			debounceTimer = nil
			debounceC = nil
		}
	}
	defer func() {
		stopDebounce()
		p.phase = PhaseOnWifi
		p.observedOnWifi = false
	}()

	poll := func() {
		state, err := p.monitor.State(ctx)
		if err != nil {
			// Connectivity read failed; skip this cycle silently.
			logger.Debug("Connectivity poll failed, skipping cycle", "error", err)
			return
		}

		if state.OnWifi() {
			p.observedOnWifi = true
			if p.phase != PhaseOnWifi {
				// Back on WiFi: cancel a pending debounce without firing, or
				// reset after a confirmed departure so a future fire can arm.
				stopDebounce()
				p.phase = PhaseOnWifi
			}
			return
		}

		if p.phase == PhaseOnWifi && p.observedOnWifi && debounceTimer == nil {
			p.phase = PhaseOffWifiPending
			debounceTimer = time.NewTimer(p.debounce)
			debounceC = debounceTimer.C
		}
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		case <-debounceC:
			debounceTimer = nil
			debounceC = nil
			p.debounceExpired(ctx)
		}
	}
}

// debounceExpired runs when the disconnect debounce elapses without a WiFi
// recovery poll cancelling it: reconfirm connectivity with a second
// independent read, then consult the evaluator against freshly loaded
// settings.
func (p *Poller) debounceExpired(ctx context.Context) {
	if p.phase != PhaseOffWifiPending {
		return
	}

	state, err := p.monitor.State(ctx)
	if err != nil {
		logger.Debug("Debounce reconfirm failed, skipping cycle", "error", err)
		p.phase = PhaseOnWifi
		return
	}
	if state.OnWifi() {
		// The disconnect was a blip.
		p.phase = PhaseOnWifi
		return
	}

	settings, err := storage.LoadTriggerSettings(p.store)
	if err != nil {
		logger.Error("Failed to load settings at debounce expiry", "error", err)
		p.phase = PhaseOnWifi
		return
	}

	t := p.now()
	if !policy.ShouldFireDeparture(settings, true, t) {
		p.phase = PhaseOnWifi
		return
	}

	if err := fire(ctx, p.store, p.dispatcher, settings, t); err != nil {
		logger.Error("Foreground poller failed to fire", "error", err)
		p.phase = PhaseOnWifi
		return
	}
	p.phase = PhaseOffWifiConfirmed
}
