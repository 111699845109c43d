package worker

import (
	"fmt"
	"os"

	"github.com/ranjanr/roach/pkg/queue"
)

// failMalformed routes a task file that could not be parsed straight to
// failed, appending a banner that explains why instead of running
// anything — spec.md §7's SHOULD for a missing separator, decided in
// favor of an explicit failure over guessing at intent.
func (w *Worker) failMalformed(id string) error {
	path := queue.Path(w.root, queue.Checking, id)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		_, _ = f.WriteString(queue.Banner(w.id))
		_, _ = f.WriteString("roach: task file has no --- separator between precondition and command; failing without execution\n")
		_ = f.Close()
	}

	if err := queue.Fail(w.root, queue.Checking, id); err != nil && err != queue.ErrLostRace {
		return fmt.Errorf("worker: fail malformed task: %w", err)
	}
	return nil
}
