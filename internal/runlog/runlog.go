// Package runlog lays out the output directory for a simulation run:
// <base>/YYYY-MM-DD/HH-MM-SS/ holding the log, CSV files and summary.
package runlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

const (
	LogFile     = "simulation.log"
	GamesFile   = "games.csv"
	HandsFile   = "hands.csv"
	HistoryFile = "hands.toml"
	SummaryFile = "summary.toml"

	dateLayout = "2006-01-02"
	timeLayout = "15-04-05"
)

// Run is one simulation's output directory.
type Run struct {
	ID      uuid.UUID
	Dir     string
	Started time.Time

	files []*os.File
}

// Create makes a fresh run directory under base named for the clock's
// current time. A second run in the same second gets a numeric suffix.
func Create(base string, clock quartz.Clock) (*Run, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	now := clock.Now()
	dateDir := filepath.Join(base, now.Format(dateLayout))
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := now.Format(timeLayout)
	dir := filepath.Join(dateDir, name)
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create run directory: %w", err)
		}
		dir = filepath.Join(dateDir, fmt.Sprintf("%s_%d", name, i))
	}

	// v7 ids sort by creation time.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}
	return &Run{ID: id, Dir: dir, Started: now}, nil
}

// Path returns the path of a file inside the run directory.
func (r *Run) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// Create opens a new file in the run directory. It is closed by Close.
func (r *Run) Create(name string) (*os.File, error) {
	f, err := os.Create(r.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	r.files = append(r.files, f)
	return f, nil
}

// Close closes every file opened through Create.
func (r *Run) Close() error {
	var errs []error
	for _, f := range r.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.files = nil
	return errors.Join(errs...)
}

// writeAtomic replaces name in the run directory with data so readers never
// see a partially written file.
func (r *Run) writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(r.Dir, name+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return os.Rename(tmp.Name(), r.Path(name))
}
