package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/doorcheck/internal/checklist"
	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/geofence"
	"github.com/julianstephens/doorcheck/internal/network"
	"github.com/julianstephens/doorcheck/internal/notify"
	"github.com/julianstephens/doorcheck/internal/trigger"
)

// RunTaskCmd is the OS-scheduler entry point: the host's scheduler (cron,
// launchd, the companion agent) invokes it by registered task name on the
// wake cadence recorded in the task registry.
type RunTaskCmd struct {
	Name string `arg:"" help:"Registered task name to run."`
}

func (c *RunTaskCmd) Run(ctx *Context) error {
	switch c.Name {
	case constants.DepartureTaskName:
		return c.runDepartureCheck(ctx)
	case constants.StreakReminderTaskName:
		return c.runStreakReminder(ctx)
	default:
		return fmt.Errorf("unknown task: %s", c.Name)
	}
}

func (c *RunTaskCmd) runDepartureCheck(appCtx *Context) error {
	dispatcher := notify.NewDispatcher(appCtx.Store)
	outcome := trigger.RunDepartureCheck(context.Background(), appCtx.Store, network.NewSysfsMonitor(), dispatcher, time.Now)
	fmt.Println(string(outcome))
	if outcome == trigger.OutcomeFailed {
		return fmt.Errorf("departure check failed; see log for details")
	}
	return nil
}

func (c *RunTaskCmd) runStreakReminder(appCtx *Context) error {
	allChecked, err := checklist.NewEngine(appCtx.Store).AllChecked()
	if err != nil {
		return fmt.Errorf("failed to evaluate checklist: %w", err)
	}

	dispatcher := notify.NewDispatcher(appCtx.Store)
	sent, err := dispatcher.DeliverStreakReminder(context.Background(), allChecked)
	if err != nil {
		return fmt.Errorf("failed to deliver streak reminder: %w", err)
	}
	if sent {
		fmt.Println("reminder sent")
	} else {
		fmt.Println("nothing to send")
	}
	return nil
}

// GeofenceEventCmd is the hidden callback the companion agent invokes when
// the device crosses the registered home region boundary.
type GeofenceEventCmd struct {
	Event string `arg:"" enum:"enter,exit" help:"Transition direction."`
}

func (c *GeofenceEventCmd) Run(appCtx *Context) error {
	ev := geofence.Event{Type: geofence.EventType(c.Event), At: time.Now()}
	dispatcher := notify.NewDispatcher(appCtx.Store)
	trigger.HandleGeofenceEvent(context.Background(), appCtx.Store, dispatcher, ev, time.Now)
	return nil
}
