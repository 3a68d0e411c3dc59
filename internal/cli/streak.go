package cli

import (
	"fmt"

	"github.com/julianstephens/doorcheck/internal/notify"
	"github.com/julianstephens/doorcheck/internal/streak"
	"github.com/julianstephens/doorcheck/internal/utils"
)

type StreakShowCmd struct{}

func (c *StreakShowCmd) Run(ctx *Context) error {
	record, err := streak.NewEngine(ctx.Store).Get()
	if err != nil {
		return fmt.Errorf("failed to load streak: %w", err)
	}

	fmt.Println("Streak:")
	fmt.Printf("  Current:     %d day(s)\n", record.CurrentStreak)
	fmt.Printf("  Longest:     %d day(s)\n", record.LongestStreak)
	fmt.Printf("  Total Days:  %d\n", record.TotalChecks)
	if record.LastCheckDate != "" {
		fmt.Printf("  Last Check:  %s\n", record.LastCheckDate)
	} else {
		fmt.Printf("  Last Check:  never\n")
	}
	return nil
}

type StreakRemindCmd struct {
	At     string `help:"Time to deliver today's reminder (HH:MM)." default:"20:00"`
	Cancel bool   `help:"Cancel the pending reminder instead."`
}

func (c *StreakRemindCmd) Run(ctx *Context) error {
	d := notify.NewDispatcher(ctx.Store)

	if c.Cancel {
		if err := d.CancelStreakReminder(); err != nil {
			return fmt.Errorf("failed to cancel streak reminder: %w", err)
		}
		fmt.Println("✓ Streak reminder cancelled")
		return nil
	}

	if !utils.ValidateTimeFormat(c.At) {
		return fmt.Errorf("invalid reminder time (expected HH:MM): %q", c.At)
	}
	if err := d.ScheduleStreakReminder(c.At); err != nil {
		return fmt.Errorf("failed to schedule streak reminder: %w", err)
	}
	fmt.Printf("✓ Streak reminder scheduled for today at %s\n", c.At)
	return nil
}
