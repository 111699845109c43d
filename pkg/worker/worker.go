package worker

import (
	"errors"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ranjanr/roach/pkg/log"
	"github.com/ranjanr/roach/pkg/metrics"
	"github.com/ranjanr/roach/pkg/queue"
)

// Config configures a Worker instance.
type Config struct {
	// QueueRoot is the directory under which the six state
	// subdirectories live.
	QueueRoot string
	// PollInterval is T_poll, the sleep between idle-loop and
	// supervise-loop ticks. Defaults to one second.
	PollInterval time.Duration
	// Persist, when false (the default), makes Run return as soon as
	// queued is observed empty, yielding the scheduling slot back to
	// the cluster. When true the worker idles indefinitely.
	Persist bool
	// OneTask, when true, makes Run return after the first task reaches
	// a terminal state (done or failed) or is deleted externally while
	// running.
	OneTask bool
}

// Worker is the single-threaded supervision loop described in spec.md
// §4.3: it claims at most one task at a time from a shared queue root
// and owns it until a terminal state, a graceful SIGTERM, or an
// external deletion ends that ownership.
type Worker struct {
	root         string
	id           string
	pollInterval time.Duration
	persist      bool
	oneTask      bool
	logger       zerolog.Logger
}

// New creates a Worker and idempotently ensures the queue root's state
// directories exist.
func New(cfg Config) (*Worker, error) {
	if cfg.QueueRoot == "" {
		return nil, errors.New("worker: queue root is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if err := queue.EnsureDirs(cfg.QueueRoot); err != nil {
		return nil, err
	}

	id := queue.NewWorkerID()
	return &Worker{
		root:         cfg.QueueRoot,
		id:           id,
		pollInterval: cfg.PollInterval,
		persist:      cfg.Persist,
		oneTask:      cfg.OneTask,
		logger:       log.WithWorkerID(id),
	}, nil
}

// ID returns this worker's identity string, as embedded in task banners.
func (w *Worker) ID() string { return w.id }

// Run executes the supervision loop until it exits voluntarily (empty
// queue with persist=false, or one_task=true after a terminal
// transition) or a SIGTERM is received. It always returns nil on a
// graceful exit — spec.md §6: "Worker always exits 0 on graceful
// shutdown... Non-zero exit indicates a programming fault."
func (w *Worker) Run() error {
	sigCh, stop := notifyTerm()
	defer stop()

	wake := watchQueued(w.root, w.logger)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		ids, err := queue.ListSorted(w.root, queue.Queued)
		if err != nil {
			w.logger.Error().Err(err).Msg("failed to list queued directory")
		}

		if len(ids) == 0 {
			if !w.persist {
				w.logger.Info().Msg("queue empty, yielding scheduling slot")
				return nil
			}
			select {
			case <-sigCh:
				return nil
			case <-ticker.C:
			case <-wake:
			}
			continue
		}

		terminal, err := w.attemptOne(ids, sigCh)
		if err != nil {
			if errors.Is(err, errShutdown) {
				w.logger.Info().Msg("sigterm received, released task and exiting")
				return nil
			}
			w.logger.Error().Err(err).Msg("task attempt ended in error")
		}

		if terminal && w.oneTask {
			return nil
		}
		if !terminal {
			select {
			case <-sigCh:
				return nil
			case <-ticker.C:
			case <-wake:
			}
		}
	}
}

// attemptOne tries, in order, to claim one of the candidate task ids and
// drive it to a terminal or released outcome. It returns as soon as one
// claim succeeds — the for-loop only continues past a claim attempt when
// the claim itself failed: lost to a peer (spec.md §4.3 step 2), or a
// rename error, which is logged.
func (w *Worker) attemptOne(ids []string, sigCh <-chan os.Signal) (terminal bool, err error) {
	for _, id := range ids {
		if err := queue.Claim(w.root, id); err != nil {
			if errors.Is(err, queue.ErrLostRace) {
				continue
			}
			w.logger.Error().Err(err).Str("task_id", id).Msg("claim attempt failed")
			continue
		}

		metrics.TasksClaimed.WithLabelValues(w.id).Inc()
		return w.runClaimed(id, sigCh)
	}
	return false, nil
}

// watchQueued returns a best-effort wake-up channel that fires shortly
// after something changes in <root>/queued. It never replaces the poll
// ticker — multiple workers on NFS cannot rely on change notifications
// (spec.md §9) — so a nil or broken watcher degrades silently to
// poll-only behavior.
func watchQueued(root string, logger zerolog.Logger) <-chan struct{} {
	dir := queue.Dir(root, queue.Queued)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Debug().Err(err).Msg("fsnotify unavailable, falling back to polling only")
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		logger.Debug().Err(err).Msg("fsnotify watch failed, falling back to polling only")
		_ = watcher.Close()
		return nil
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return ch
}
