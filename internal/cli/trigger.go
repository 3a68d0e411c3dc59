package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/doorcheck/internal/storage"
)

type TriggerEnableCmd struct {
	HomeSSID string `help:"Label for the home WiFi network (informational)."`
}

func (c *TriggerEnableCmd) Run(ctx *Context) error {
	settings, err := storage.LoadTriggerSettings(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to load trigger settings: %w", err)
	}

	settings.Enabled = true
	if c.HomeSSID != "" {
		settings.HomeSSID = c.HomeSSID
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := storage.SaveTriggerSettings(ctx.Store, settings); err != nil {
		return fmt.Errorf("failed to save trigger settings: %w", err)
	}

	if err := ctx.TriggerManager().Sync(); err != nil {
		return err
	}
	fmt.Println("✓ Departure trigger enabled")
	fmt.Printf("  Active hours: %s - %s, cooldown %d min\n", settings.ActiveStart, settings.ActiveEnd, settings.CooldownMinutes)
	return nil
}

type TriggerDisableCmd struct{}

func (c *TriggerDisableCmd) Run(ctx *Context) error {
	settings, err := storage.LoadTriggerSettings(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to load trigger settings: %w", err)
	}

	settings.Enabled = false
	if err := storage.SaveTriggerSettings(ctx.Store, settings); err != nil {
		return fmt.Errorf("failed to save trigger settings: %w", err)
	}

	if err := ctx.TriggerManager().Disable(); err != nil {
		return err
	}
	fmt.Println("✓ Departure trigger disabled")
	return nil
}

type TriggerSetCmd struct {
	HomeSSID        *string  `help:"Label for the home WiFi network."`
	ActiveStart     *string  `help:"Start of the daily firing window (HH:MM)."`
	ActiveEnd       *string  `help:"End of the daily firing window (HH:MM), may wrap past midnight."`
	CooldownMinutes *int     `help:"Minimum minutes between reminders."`
	Geofence        *bool    `help:"Enable or disable the geofence trigger source."`
	HomeLat         *float64 `help:"Home latitude for the geofence."`
	HomeLon         *float64 `help:"Home longitude for the geofence."`
	RadiusMeters    *float64 `help:"Geofence radius in meters."`
}

func (c *TriggerSetCmd) Run(ctx *Context) error {
	settings, err := storage.LoadTriggerSettings(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to load trigger settings: %w", err)
	}

	updated := false
	if c.HomeSSID != nil {
		settings.HomeSSID = *c.HomeSSID
		updated = true
	}
	if c.ActiveStart != nil {
		settings.ActiveStart = *c.ActiveStart
		updated = true
	}
	if c.ActiveEnd != nil {
		settings.ActiveEnd = *c.ActiveEnd
		updated = true
	}
	if c.CooldownMinutes != nil {
		settings.CooldownMinutes = *c.CooldownMinutes
		updated = true
	}
	if c.Geofence != nil {
		settings.GeofenceEnabled = *c.Geofence
		updated = true
	}
	if c.HomeLat != nil {
		settings.HomeLatitude = c.HomeLat
		updated = true
	}
	if c.HomeLon != nil {
		settings.HomeLongitude = c.HomeLon
		updated = true
	}
	if c.RadiusMeters != nil {
		settings.HomeRadiusMeters = *c.RadiusMeters
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'doorcheck trigger show' to view settings.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := storage.SaveTriggerSettings(ctx.Store, settings); err != nil {
		return fmt.Errorf("failed to save trigger settings: %w", err)
	}

	if err := ctx.TriggerManager().Sync(); err != nil {
		return err
	}
	fmt.Println("Trigger settings updated successfully.")
	return nil
}

type TriggerShowCmd struct{}

func (c *TriggerShowCmd) Run(ctx *Context) error {
	settings, err := storage.LoadTriggerSettings(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to load trigger settings: %w", err)
	}

	fmt.Println("Trigger Settings:")
	fmt.Printf("  Enabled:        %s\n", onOff(settings.Enabled))
	fmt.Printf("  Home WiFi:      %s\n", valueOrDash(settings.HomeSSID))
	fmt.Printf("  Active Hours:   %s - %s\n", settings.ActiveStart, settings.ActiveEnd)
	fmt.Printf("  Cooldown:       %d min\n", settings.CooldownMinutes)
	if settings.LastTriggeredAt != nil {
		fmt.Printf("  Last Triggered: %s\n", settings.LastTriggeredAt.Local().Format(time.RFC1123))
	} else {
		fmt.Printf("  Last Triggered: never\n")
	}
	fmt.Println("\nGeofence:")
	fmt.Printf("  Enabled:        %s\n", onOff(settings.GeofenceEnabled))
	if settings.HomeLatitude != nil && settings.HomeLongitude != nil {
		fmt.Printf("  Home:           %.5f, %.5f (radius %.0fm)\n", *settings.HomeLatitude, *settings.HomeLongitude, settings.HomeRadiusMeters)
	} else {
		fmt.Printf("  Home:           not set\n")
	}
	return nil
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
