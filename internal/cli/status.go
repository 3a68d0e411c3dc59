package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/doorcheck/internal/checklist"
	"github.com/julianstephens/doorcheck/internal/notify"
	"github.com/julianstephens/doorcheck/internal/policy"
	"github.com/julianstephens/doorcheck/internal/storage"
	"github.com/julianstephens/doorcheck/internal/streak"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	now := time.Now()

	trigger, err := storage.LoadTriggerSettings(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to load trigger settings: %w", err)
	}
	state, err := checklist.NewEngine(ctx.Store).Load()
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}
	record, err := streak.NewEngine(ctx.Store).Get()
	if err != nil {
		return fmt.Errorf("failed to load streak: %w", err)
	}

	fmt.Println(titleStyle.Render("doorcheck"))

	if trigger.Enabled {
		line := "reminders on"
		if policy.WithinActiveHours(trigger.ActiveStart, trigger.ActiveEnd, now) {
			line += " · inside active hours"
		} else {
			line += " · outside active hours"
		}
		fmt.Println(okStyle.Render("● " + line))
	} else {
		fmt.Println(mutedStyle.Render("○ reminders off"))
	}

	active := checklist.ActiveItems(state.Items, now)
	checked := 0
	for _, item := range active {
		if state.Checks.Checked(item.ID) {
			checked++
		}
	}
	fmt.Printf("\nToday: %d/%d items checked\n", checked, len(active))
	for _, item := range active {
		mark := mutedStyle.Render("[ ]")
		if state.Checks.Checked(item.ID) {
			mark = okStyle.Render("[✓]")
		}
		fmt.Printf("  %s %s %s\n", mark, item.Emoji, item.Label)
	}

	if record.CurrentStreak > 0 {
		fmt.Printf("\n🔥 %d day streak (longest %d)\n", record.CurrentStreak, record.LongestStreak)
	}

	if !notify.NewDispatcher(ctx.Store).Available() {
		fmt.Println()
		fmt.Println(warnStyle.Render("⚠ notification agent not running; reminders cannot be delivered"))
	}

	return nil
}
