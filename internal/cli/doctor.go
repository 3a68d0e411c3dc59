package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/notify"
	"github.com/julianstephens/doorcheck/internal/storage"
	"github.com/julianstephens/doorcheck/internal/trigger"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: storage reachable
	if _, _, err := ctx.Store.Get(constants.KeyTriggerSettings); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		dbReachable = true
	}

	// Check 2: settings valid (only if storage is reachable)
	if dbReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings valid: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings valid: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings valid: SKIPPED (storage not reachable)\n")
	}

	// Check 3: checklist integrity
	if dbReachable {
		if err := checkChecklistIntegrity(ctx); err != nil {
			fmt.Printf("❌ Checklist integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Checklist integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Checklist integrity: SKIPPED (storage not reachable)\n")
	}

	// Check 4: streak integrity
	if dbReachable {
		if err := checkStreakIntegrity(ctx); err != nil {
			fmt.Printf("❌ Streak integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Streak integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Streak integrity: SKIPPED (storage not reachable)\n")
	}

	// Check 5: task registrations match settings
	if dbReachable {
		if err := checkRegistrations(ctx); err != nil {
			fmt.Printf("⚠ Task registrations: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Task registrations: OK\n")
		}
	} else {
		fmt.Printf("⊘ Task registrations: SKIPPED (storage not reachable)\n")
	}

	// Check 6: notification agent (warning only)
	if notify.NewDispatcher(ctx.Store).Available() {
		fmt.Printf("✓ Notification agent: OK\n")
	} else {
		fmt.Printf("⚠ Notification agent: WARNING\n")
		fmt.Printf("   Agent not running; reminders cannot be delivered\n")
	}

	// Check 7: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkSettings(ctx *Context) error {
	triggerSettings, err := storage.LoadTriggerSettings(ctx.Store)
	if err != nil {
		return err
	}
	if err := triggerSettings.Validate(); err != nil {
		return fmt.Errorf("trigger settings: %w", err)
	}

	notifSettings, err := storage.LoadNotificationSettings(ctx.Store)
	if err != nil {
		return err
	}
	if err := notifSettings.Validate(); err != nil {
		return fmt.Errorf("notification settings: %w", err)
	}
	return nil
}

func checkChecklistIntegrity(ctx *Context) error {
	items, err := storage.LoadChecklistItems(ctx.Store)
	if err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %q has an empty id", item.Label)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate item id: %s", item.ID)
		}
		seen[item.ID] = true
		if err := item.Validate(); err != nil {
			return err
		}
	}

	checks, err := storage.LoadDailyChecks(ctx.Store)
	if err != nil {
		return err
	}
	for _, id := range checks.CheckedIDs {
		if !seen[id] {
			return fmt.Errorf("checked id %s does not match any item", id)
		}
	}
	return nil
}

func checkStreakIntegrity(ctx *Context) error {
	record, err := storage.LoadStreak(ctx.Store)
	if err != nil {
		return err
	}
	if record.TotalChecks != len(record.CheckedDays) {
		return fmt.Errorf("totalChecks %d does not match %d checked days", record.TotalChecks, len(record.CheckedDays))
	}
	if record.CurrentStreak > record.LongestStreak {
		return fmt.Errorf("current streak %d exceeds longest %d", record.CurrentStreak, record.LongestStreak)
	}
	return nil
}

func checkRegistrations(ctx *Context) error {
	settings, err := storage.LoadTriggerSettings(ctx.Store)
	if err != nil {
		return err
	}

	registrar := &trigger.FileRegistrar{Path: ctx.SidecarPath(constants.TaskRegistryFileName)}
	registered, err := registrar.IsRegistered(constants.DepartureTaskName)
	if err != nil {
		return err
	}
	if settings.Enabled && !registered {
		return fmt.Errorf("trigger is enabled but the departure check is not registered; run 'doorcheck trigger enable' to repair")
	}
	if !settings.Enabled && registered {
		return fmt.Errorf("trigger is disabled but the departure check is still registered; run 'doorcheck trigger disable' to repair")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reads %v, which is implausible", now)
	}
	if _, err := time.LoadLocation(now.Location().String()); err != nil {
		return fmt.Errorf("timezone %q is not loadable: %w", now.Location(), err)
	}
	return nil
}
