package queue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingSeparator is returned by Parse when a task file has no line
// that is exactly "---". spec.md §7 leaves the response to this open;
// DESIGN.md records the decision: such tasks are moved straight to
// failed rather than coerced into an ever-cycling precondition.
var ErrMissingSeparator = errors.New("queue: task file has no --- separator")

const bannerPrefix = "==="

// Task is the parsed, in-memory form of a task file: the three sections
// spec.md §3/§6 define, in order.
type Task struct {
	ID           string
	Precondition string
	Command      string
	// Log is the appended execution output, including its banner line,
	// if the file has already been run at least once. Empty otherwise.
	Log string
}

// EffectivePrecondition returns the precondition text to actually run: an
// empty (or whitespace-only) section behaves like the shell literal
// "true", as spec.md §3 specifies.
func (t *Task) EffectivePrecondition() string {
	if strings.TrimSpace(t.Precondition) == "" {
		return "true"
	}
	return t.Precondition
}

// Parse splits raw task file bytes into precondition, command, and
// trailing log sections. Only the FIRST line that is exactly "---" acts
// as the header separator, and only the first line starting with "==="
// found after that separator starts the log section — later occurrences
// of either marker inside the command body are data, not structure
// (spec.md §6, §8 boundary cases).
func Parse(id string, data []byte) (*Task, error) {
	if len(data) == 0 {
		// A zero-byte task file behaves as empty precondition + empty
		// command (spec.md §8).
		return &Task{ID: id}, nil
	}

	lines := strings.Split(string(data), "\n")

	sepIdx := -1
	for i, line := range lines {
		if line == "---" {
			sepIdx = i
			break
		}
	}
	if sepIdx == -1 {
		return nil, ErrMissingSeparator
	}

	precondition := strings.Join(lines[:sepIdx], "\n")
	rest := lines[sepIdx+1:]

	bannerIdx := -1
	for i, line := range rest {
		if strings.HasPrefix(line, bannerPrefix) {
			bannerIdx = i
			break
		}
	}

	if bannerIdx == -1 {
		return &Task{ID: id, Precondition: precondition, Command: strings.Join(rest, "\n")}, nil
	}

	return &Task{
		ID:           id,
		Precondition: precondition,
		Command:      strings.Join(rest[:bannerIdx], "\n"),
		Log:          strings.Join(rest[bannerIdx:], "\n"),
	}, nil
}

// ReadFile reads and parses the task file at path.
func ReadFile(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("queue: read task file: %w", err)
	}
	return Parse(filepath.Base(path), data)
}

// Banner returns the execution log banner line roach appends before a
// worker's command output: "=== <worker_id> ===\n".
func Banner(workerID string) string {
	return fmt.Sprintf("=== %s ===\n", workerID)
}
