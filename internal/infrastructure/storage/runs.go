package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Run records one extraction pass over a document.
type Run struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	Strategy     string    `json:"strategy"`
	Requirements int       `json:"requirements"`
	Components   int       `json:"components"`
}

// RecordRun appends the run to the append-only run log. A missing ID or
// timestamp is filled in.
func (r *FilesystemRepository) RecordRun(run Run) error {
	if err := r.Initialize(); err != nil {
		return err
	}

	path, err := r.ResolvePath(RunsFile)
	if err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	data = append(data, '\n')

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write run: %w", err)
	}

	return nil
}

// LoadRuns returns all recorded runs in order. Malformed lines are skipped.
func (r *FilesystemRepository) LoadRuns() ([]Run, error) {
	path, err := r.ResolvePath(RunsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}

	var runs []Run
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var run Run
		if err := json.Unmarshal(line, &run); err != nil {
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}
