package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/doorcheck/internal/notify"
	"github.com/julianstephens/doorcheck/internal/storage"
)

type NotificationsCmd struct {
	List bool `help:"List current notification settings."`

	Departure       *bool   `help:"Enable or disable departure notifications."`
	StreakReminders *bool   `help:"Enable or disable streak reminders."`
	QuietStart      *string `help:"Start of quiet hours (HH:MM)."`
	QuietEnd        *string `help:"End of quiet hours (HH:MM, exclusive)."`
}

func (c *NotificationsCmd) Run(ctx *Context) error {
	settings, err := storage.LoadNotificationSettings(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to load notification settings: %w", err)
	}

	if c.List {
		fmt.Println("Notification Settings:")
		fmt.Printf("  Departure Notifications: %s\n", onOff(settings.DepartureNotifications))
		fmt.Printf("  Streak Reminders:        %s\n", onOff(settings.StreakReminders))
		fmt.Printf("  Quiet Hours:             %s - %s\n", settings.QuietHoursStart, settings.QuietHoursEnd)
		return nil
	}

	updated := false
	if c.Departure != nil {
		settings.DepartureNotifications = *c.Departure
		updated = true
	}
	if c.StreakReminders != nil {
		settings.StreakReminders = *c.StreakReminders
		updated = true
	}
	if c.QuietStart != nil {
		settings.QuietHoursStart = *c.QuietStart
		updated = true
	}
	if c.QuietEnd != nil {
		settings.QuietHoursEnd = *c.QuietEnd
		updated = true
	}

	if updated {
		if err := settings.Validate(); err != nil {
			return err
		}
		if err := storage.SaveNotificationSettings(ctx.Store, settings); err != nil {
			return fmt.Errorf("failed to save notification settings: %w", err)
		}
		fmt.Println("Notification settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

// NotifyTestCmd sends a departure notification through the full delivery
// path, including quiet-hours gating, so the agent setup can be verified.
type NotifyTestCmd struct{}

func (c *NotifyTestCmd) Run(ctx *Context) error {
	d := notify.NewDispatcher(ctx.Store)
	if !d.Available() {
		return fmt.Errorf("notification agent is not running; start the doorcheck agent first")
	}
	if err := d.SendDeparture(context.Background()); err != nil {
		return fmt.Errorf("failed to send test notification: %w", err)
	}
	fmt.Println("✓ Test notification dispatched (suppressed if quiet hours apply)")
	return nil
}
