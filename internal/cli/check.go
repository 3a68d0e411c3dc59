package cli

import (
	"fmt"

	"github.com/julianstephens/doorcheck/internal/checklist"
	"github.com/julianstephens/doorcheck/internal/logger"
	"github.com/julianstephens/doorcheck/internal/notify"
	"github.com/julianstephens/doorcheck/internal/streak"
)

type CheckCmd struct {
	ID string `arg:"" help:"Item ID to toggle."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	engine := checklist.NewEngine(ctx.Store)
	completed, err := engine.Toggle(c.ID)
	if err != nil {
		return fmt.Errorf("failed to toggle item: %w", err)
	}

	if !completed {
		fmt.Println("✓ Toggled")
		return nil
	}

	// Completing the list is what feeds the streak; un-checking later never
	// takes today's credit back.
	record, err := streak.NewEngine(ctx.Store).RecordCheck()
	if err != nil {
		return fmt.Errorf("failed to record streak: %w", err)
	}

	// The pending end-of-day reminder has nothing left to remind about.
	if err := notify.NewDispatcher(ctx.Store).CancelStreakReminder(); err != nil {
		logger.Warn("Failed to cancel streak reminder", "error", err)
	}

	fmt.Println("🎉 All items checked!")
	fmt.Printf("   Current streak: %d day(s), longest: %d\n", record.CurrentStreak, record.LongestStreak)
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *Context) error {
	engine := checklist.NewEngine(ctx.Store)
	if err := engine.ResetChecks(); err != nil {
		return fmt.Errorf("failed to reset checks: %w", err)
	}
	fmt.Println("✓ Today's checks cleared")
	return nil
}
