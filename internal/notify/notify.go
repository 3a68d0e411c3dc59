// Package notify gates and delivers user-facing notifications. Trigger
// policy (active hours, cooldown, dedup) lives in internal/policy; this
// package applies the delivery-side gates: per-type toggles, quiet hours,
// and agent availability.
package notify

import (
	"context"
	"time"

	"github.com/julianstephens/doorcheck/internal/logger"
	"github.com/julianstephens/doorcheck/internal/models"
	"github.com/julianstephens/doorcheck/internal/policy"
	"github.com/julianstephens/doorcheck/internal/storage"
	"github.com/julianstephens/doorcheck/internal/utils"
)

const (
	departureText = "🚪 Leaving home? Quick check! Make sure you have everything."
	streakText    = "🔥 Keep your streak going — check off today's essentials."
)

// Sender is the raw delivery mechanism.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Dispatcher applies notification settings before handing text to a Sender.
type Dispatcher struct {
	store  storage.Provider
	sender Sender
	now    func() time.Time
}

func NewDispatcher(store storage.Provider) *Dispatcher {
	return &Dispatcher{
		store:  store,
		sender: NewAgentSender(),
		now:    time.Now,
	}
}

// Available reports whether notifications can currently be delivered.
func (d *Dispatcher) Available() bool {
	if agent, ok := d.sender.(*AgentSender); ok {
		return agent.Available()
	}
	return true
}

// SendDeparture delivers the departure reminder unless departure
// notifications are disabled or quiet hours apply. A suppressed delivery is
// not an error; callers still stamp lastTriggeredAt so the trigger policy
// sees the fire.
func (d *Dispatcher) SendDeparture(ctx context.Context) error {
	settings, err := storage.LoadNotificationSettings(d.store)
	if err != nil {
		return err
	}

	if !settings.DepartureNotifications {
		logger.Debug("Departure notification suppressed: disabled by user")
		return nil
	}
	if policy.WithinQuietHours(settings.QuietHoursStart, settings.QuietHoursEnd, d.now()) {
		logger.Debug("Departure notification suppressed: quiet hours")
		return nil
	}

	return d.sender.Send(ctx, departureText)
}

// ScheduleStreakReminder records the single pending end-of-day reminder for
// today, replacing any previous one.
func (d *Dispatcher) ScheduleStreakReminder(at string) error {
	reminder := models.StreakReminder{
		Date: utils.Today(d.now()),
		At:   at,
	}
	return storage.SaveStreakReminder(d.store, reminder)
}

// CancelStreakReminder drops the pending reminder, if any.
func (d *Dispatcher) CancelStreakReminder() error {
	return storage.DeleteStreakReminder(d.store)
}

// DeliverStreakReminder sends the pending reminder if it is due: scheduled
// for today at or before now, streak reminders enabled, checklist not yet
// complete, and outside quiet hours. Returns whether a notification was
// sent. A consumed or stale reminder is cleared either way.
func (d *Dispatcher) DeliverStreakReminder(ctx context.Context, allChecked bool) (bool, error) {
	reminder, err := storage.LoadStreakReminder(d.store)
	if err != nil {
		return false, err
	}
	if reminder == nil {
		return false, nil
	}

	now := d.now()
	today := utils.Today(now)

	if reminder.Date != today {
		// Yesterday's reminder is dead; clear it.
		return false, storage.DeleteStreakReminder(d.store)
	}

	dueMins, err := utils.ParseTimeToMinutes(reminder.At)
	if err != nil {
		logger.Warn("Dropping streak reminder with malformed time", "at", reminder.At)
		return false, storage.DeleteStreakReminder(d.store)
	}
	if utils.MinutesOfDay(now) < dueMins {
		return false, nil
	}

	if err := storage.DeleteStreakReminder(d.store); err != nil {
		return false, err
	}

	settings, err := storage.LoadNotificationSettings(d.store)
	if err != nil {
		return false, err
	}
	if !settings.StreakReminders {
		return false, nil
	}
	if allChecked {
		// Nothing to remind about; today's list is already complete.
		return false, nil
	}
	if policy.WithinQuietHours(settings.QuietHoursStart, settings.QuietHoursEnd, now) {
		return false, nil
	}

	if err := d.sender.Send(ctx, streakText); err != nil {
		return false, err
	}
	return true, nil
}
