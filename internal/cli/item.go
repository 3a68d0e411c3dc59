package cli

import (
	"fmt"

	"github.com/julianstephens/doorcheck/internal/checklist"
	"github.com/julianstephens/doorcheck/internal/models"
)

type ItemAddCmd struct {
	Label string `arg:"" help:"Item label, e.g. 'Keys'."`
	Emoji string `help:"Emoji shown next to the label." default:"📦"`

	Days  string `help:"Comma-separated weekdays the item applies to (e.g. mon,tue,fri). Requires --from and --until."`
	From  string `help:"Start of the item's daily window (HH:MM)."`
	Until string `help:"End of the item's daily window (HH:MM)."`
}

func (c *ItemAddCmd) Run(ctx *Context) error {
	var rule *models.TimeRule
	if c.Days != "" || c.From != "" || c.Until != "" {
		if c.Days == "" || c.From == "" || c.Until == "" {
			return fmt.Errorf("a time rule needs --days, --from, and --until together")
		}
		days, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		rule = &models.TimeRule{Days: days, Start: c.From, End: c.Until}
	}

	engine := checklist.NewEngine(ctx.Store)
	item, err := engine.AddItem(c.Emoji, c.Label, rule)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	fmt.Printf("✓ Added %s %s (id %s)\n", item.Emoji, item.Label, item.ID)
	return nil
}

type ItemRemoveCmd struct {
	ID string `arg:"" help:"Item ID to remove."`
}

func (c *ItemRemoveCmd) Run(ctx *Context) error {
	engine := checklist.NewEngine(ctx.Store)
	if err := engine.RemoveItem(c.ID); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	fmt.Println("✓ Item removed")
	return nil
}

type ItemListCmd struct{}

func (c *ItemListCmd) Run(ctx *Context) error {
	engine := checklist.NewEngine(ctx.Store)
	state, err := engine.Load()
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}

	if len(state.Items) == 0 {
		fmt.Println("No items. Use 'doorcheck item add' to create one.")
		return nil
	}

	for _, item := range state.Items {
		mark := " "
		if state.Checks.Checked(item.ID) {
			mark = "✓"
		}
		status := ""
		if !item.IsActive {
			status = " (inactive)"
		}
		if item.TimeRule != nil {
			status += fmt.Sprintf(" [%s %s-%s]", FormatWeekdays(item.TimeRule.Days), item.TimeRule.Start, item.TimeRule.End)
		}
		fmt.Printf("  [%s] %s %s%s\n      id: %s\n", mark, item.Emoji, item.Label, status, item.ID)
	}
	return nil
}

type ItemMoveCmd struct {
	ID       string `arg:"" help:"Item ID to move."`
	Position int    `arg:"" help:"New 0-based position."`
}

func (c *ItemMoveCmd) Run(ctx *Context) error {
	engine := checklist.NewEngine(ctx.Store)
	if err := engine.MoveItem(c.ID, c.Position); err != nil {
		return fmt.Errorf("failed to move item: %w", err)
	}
	fmt.Println("✓ Item moved")
	return nil
}

type ItemEnableCmd struct {
	ID string `arg:"" help:"Item ID to activate."`
}

func (c *ItemEnableCmd) Run(ctx *Context) error {
	engine := checklist.NewEngine(ctx.Store)
	if err := engine.SetActive(c.ID, true); err != nil {
		return fmt.Errorf("failed to activate item: %w", err)
	}
	fmt.Println("✓ Item activated")
	return nil
}

type ItemDisableCmd struct {
	ID string `arg:"" help:"Item ID to deactivate."`
}

func (c *ItemDisableCmd) Run(ctx *Context) error {
	engine := checklist.NewEngine(ctx.Store)
	if err := engine.SetActive(c.ID, false); err != nil {
		return fmt.Errorf("failed to deactivate item: %w", err)
	}
	fmt.Println("✓ Item deactivated")
	return nil
}
