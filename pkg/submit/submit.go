// Package submit implements the one library call that creates a new
// task: write it into <root>/queued atomically and hand back a
// completion-witness shell expression the caller can chain into a
// dependent task's precondition.
package submit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ranjanr/roach/pkg/log"
	"github.com/ranjanr/roach/pkg/queue"
)

// DefaultPrecondition is substituted when chk is empty, matching the
// shell convention spec.md §3 documents.
const DefaultPrecondition = "true"

// Submit writes a new task into queueRoot/queued and returns the
// completion witness: a shell expression that tests for the task's
// eventual presence in queueRoot/done.
//
// The file is written to a temporary name in the same directory and then
// renamed into place, so no worker can observe a partially-written task
// (spec.md §4.1).
func Submit(queueRoot, cmd, chk string) (string, error) {
	if chk == "" {
		chk = DefaultPrecondition
	}

	if err := queue.EnsureDirs(queueRoot); err != nil {
		return "", fmt.Errorf("submit: %w", err)
	}

	taskID := queue.NewTaskID()
	dir := queue.Dir(queueRoot, queue.Queued)

	tmp, err := os.CreateTemp(dir, ".tmp-"+taskID+"-*")
	if err != nil {
		return "", fmt.Errorf("submit: create temp task file: %w", err)
	}
	tmpPath := tmp.Name()

	content := chk + "\n---\n" + cmd
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("submit: write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("submit: close task file: %w", err)
	}

	finalPath := filepath.Join(dir, taskID)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("submit: rename task file into queued: %w", err)
	}

	log.WithTaskID(taskID).Info().Str("queue_dir", queueRoot).Msg("task submitted")

	return Witness(queueRoot, taskID), nil
}

// Witness returns the completion-witness shell expression for a task id:
// a test that is true exactly once the task has reached done, and false
// beforehand (spec.md §8 invariant 4).
func Witness(queueRoot, taskID string) string {
	return fmt.Sprintf("test -f '%s'", queue.Path(queueRoot, queue.Done, taskID))
}
