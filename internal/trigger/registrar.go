package trigger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TaskOptions are the scheduling hints recorded when a background task is
// registered.
type TaskOptions struct {
	// MinInterval is the minimum wake cadence; the scheduler may run the task
	// less often but never more.
	MinInterval time.Duration `json:"min_interval"`
	// StartOnBoot requests the task survive a device restart.
	StartOnBoot bool `json:"start_on_boot"`
	// StopOnTerminate requests the task die with the app process.
	StopOnTerminate bool `json:"stop_on_terminate"`
}

// Registrar records which background tasks the OS scheduler should run.
// Register is idempotent: re-registering an already-registered task updates
// its options in place.
type Registrar interface {
	Register(name string, opts TaskOptions) error
	Unregister(name string) error
	IsRegistered(name string) (bool, error)
}

// FileRegistrar keeps registrations in a JSON map next to the database. The
// host's scheduler integration (cron, launchd, the companion agent) reads
// this file to know what to invoke and how often.
type FileRegistrar struct {
	Path string
}

func (r *FileRegistrar) load() (map[string]TaskOptions, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]TaskOptions{}, nil
		}
		return nil, fmt.Errorf("failed to read task registry: %w", err)
	}

	tasks := map[string]TaskOptions{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse task registry: %w", err)
	}
	return tasks, nil
}

func (r *FileRegistrar) save(tasks map[string]TaskOptions) error {
	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create task registry directory: %w", err)
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode task registry: %w", err)
	}

	if err := os.WriteFile(r.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write task registry: %w", err)
	}
	return nil
}

func (r *FileRegistrar) Register(name string, opts TaskOptions) error {
	tasks, err := r.load()
	if err != nil {
		return err
	}
	tasks[name] = opts
	return r.save(tasks)
}

func (r *FileRegistrar) Unregister(name string) error {
	tasks, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := tasks[name]; !ok {
		return nil
	}
	delete(tasks, name)
	return r.save(tasks)
}

func (r *FileRegistrar) IsRegistered(name string) (bool, error) {
	tasks, err := r.load()
	if err != nil {
		return false, err
	}
	_, ok := tasks[name]
	return ok, nil
}
