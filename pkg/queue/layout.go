package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// State names a queue state directory. The zero value is not a valid
// state.
type State string

const (
	Queued   State = "queued"
	Checking State = "checking"
	Active   State = "active"
	Paused   State = "paused"
	Done     State = "done"
	Failed   State = "failed"
)

// States lists every state directory a worker must ensure exists, in the
// order spec.md §6 lists them.
var States = []State{Queued, Checking, Active, Paused, Done, Failed}

// Dir returns the absolute path of a state directory under root.
func Dir(root string, s State) string {
	return filepath.Join(root, string(s))
}

// Path returns the absolute path of a task file in a given state.
func Path(root string, s State, taskID string) string {
	return filepath.Join(Dir(root, s), taskID)
}

// EnsureDirs idempotently creates the six state directories under root.
// Safe to call on every worker startup: repeated calls never alter
// existing contents (spec.md §8, round-trip laws).
func EnsureDirs(root string) error {
	for _, s := range States {
		if err := os.MkdirAll(Dir(root, s), 0o755); err != nil {
			return fmt.Errorf("queue: ensure %s: %w", s, err)
		}
	}
	return nil
}

// ListSorted returns the task ids currently present in a state directory,
// sorted lexicographically. Names starting with "." (such as the
// temporary files Submit writes before renaming) are skipped. A missing
// directory yields an empty list rather than an error, since EnsureDirs
// may not have run yet.
func ListSorted(root string, s State) ([]string, error) {
	entries, err := os.ReadDir(Dir(root, s))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("queue: list %s: %w", s, err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// Exists reports whether a task file is present at the given state.
func Exists(root string, s State, taskID string) bool {
	_, err := os.Stat(Path(root, s, taskID))
	return err == nil
}
