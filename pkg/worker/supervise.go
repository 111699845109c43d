package worker

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ranjanr/roach/pkg/metrics"
	"github.com/ranjanr/roach/pkg/procgroup"
	"github.com/ranjanr/roach/pkg/queue"
)

// runClaimed owns a task from the moment it lands in checking through
// whatever terminal or released outcome ends that ownership. It returns
// terminal=true when the task reached done or failed, or when its file
// was deleted externally while the command ran.
func (w *Worker) runClaimed(id string, sigCh <-chan os.Signal) (terminal bool, err error) {
	logger := w.logger.With().Str("task_id", id).Logger()

	task, err := queue.ReadFile(queue.Path(w.root, queue.Checking, id))
	if err != nil {
		if err == queue.ErrMissingSeparator {
			logger.Warn().Msg("task file missing --- separator, failing without running")
			return true, w.failMalformed(id)
		}
		return false, fmt.Errorf("worker: read claimed task: %w", err)
	}

	passed, err := runPrecondition(task.EffectivePrecondition(), sigCh)
	if err != nil {
		if err == errShutdown {
			if relErr := queue.ReleaseToQueued(w.root, queue.Checking, id); relErr != nil && relErr != queue.ErrLostRace {
				logger.Error().Err(relErr).Msg("failed to release task back to queued on shutdown")
			}
			return false, errShutdown
		}
		return false, err
	}
	if !passed {
		metrics.PreconditionRejections.WithLabelValues(w.id).Inc()
		if err := queue.ReleaseToQueued(w.root, queue.Checking, id); err != nil && err != queue.ErrLostRace {
			return false, fmt.Errorf("worker: release unmet precondition: %w", err)
		}
		logger.Debug().Msg("precondition not met, released to queued")
		return false, nil
	}

	if err := queue.Promote(w.root, id); err != nil {
		if err == queue.ErrLostRace {
			logger.Warn().Msg("active slot vanished between precondition pass and promote")
			return false, nil
		}
		return false, fmt.Errorf("worker: promote to active: %w", err)
	}

	return w.runActive(id, task, sigCh)
}

// runActive launches the task's command and supervises it until it
// exits, is paused/resumed externally, is deleted externally, or a
// SIGTERM arrives. loc tracks the directory the task file currently
// sits in so a SIGTERM release renames from wherever it actually is,
// not from an assumed Active.
func (w *Worker) runActive(id string, task *queue.Task, sigCh <-chan os.Signal) (terminal bool, err error) {
	logger := w.logger.With().Str("task_id", id).Logger()
	timer := metrics.NewTimer()

	logPath := queue.Path(w.root, queue.Active, id)
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("worker: open active task file for logging: %w", err)
	}
	defer logFile.Close()

	if _, err := logFile.WriteString(queue.Banner(w.id)); err != nil {
		return false, fmt.Errorf("worker: write worker banner: %w", err)
	}

	cmd := exec.Command("sh", "-c", task.Command)
	cmd.Stdin = nil
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	procgroup.Detach(cmd)

	if err := cmd.Start(); err != nil {
		logger.Error().Err(err).Msg("failed to start task command")
		if failErr := queue.Fail(w.root, queue.Active, id); failErr != nil && failErr != queue.ErrLostRace {
			return false, fmt.Errorf("worker: fail unstartable task: %w", failErr)
		}
		return true, nil
	}

	exitCh := make(chan error, 1)
	go func() { exitCh <- cmd.Wait() }()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	loc := queue.Active

	for {
		select {
		case exitErr := <-exitCh:
			timer.ObserveDuration(metrics.TaskDuration)
			if loc != queue.Active {
				// Task was paused (or its file vanished) right as the
				// command finished; the file location, not the exit
				// code, decides its fate.
				return w.finishAt(id, loc, logger)
			}
			if exitErr == nil {
				if err := queue.Complete(w.root, id); err != nil && err != queue.ErrLostRace {
					return false, fmt.Errorf("worker: complete task: %w", err)
				}
				metrics.TasksDone.WithLabelValues(w.id).Inc()
				logger.Info().Msg("task completed")
			} else {
				if err := queue.Fail(w.root, queue.Active, id); err != nil && err != queue.ErrLostRace {
					return false, fmt.Errorf("worker: fail task: %w", err)
				}
				metrics.TasksFailed.WithLabelValues(w.id).Inc()
				logger.Warn().Err(exitErr).Msg("task command exited non-zero")
			}
			return true, nil

		case <-sigCh:
			logger.Info().Msg("sigterm received, killing task command")
			_ = procgroup.KillTree(cmd.Process.Pid, syscall.SIGKILL)
			<-exitCh
			if loc != "" {
				if relErr := queue.ReleaseToQueued(w.root, loc, id); relErr != nil && relErr != queue.ErrLostRace {
					logger.Error().Err(relErr).Msg("failed to release task back to queued on shutdown")
				}
			}
			return false, errShutdown

		case <-ticker.C:
			if loc == queue.Active && !queue.Exists(w.root, queue.Active, id) {
				if queue.Exists(w.root, queue.Paused, id) {
					logger.Info().Msg("task paused externally, stopping command")
					_ = procgroup.KillTree(cmd.Process.Pid, syscall.SIGSTOP)
					loc = queue.Paused
				} else {
					logger.Warn().Msg("active task file deleted externally, killing command")
					_ = procgroup.KillTree(cmd.Process.Pid, syscall.SIGKILL)
					loc = "" // deleted: no terminal rename, nothing to release
				}
				continue
			}
			if loc == queue.Paused {
				if queue.Exists(w.root, queue.Active, id) {
					logger.Info().Msg("task resumed externally, continuing command")
					_ = procgroup.KillTree(cmd.Process.Pid, syscall.SIGCONT)
					loc = queue.Active
					continue
				}
				if !queue.Exists(w.root, queue.Paused, id) {
					logger.Warn().Msg("paused task file deleted externally, killing command")
					_ = procgroup.KillTree(cmd.Process.Pid, syscall.SIGKILL)
					loc = ""
				}
			}
		}
	}
}

// finishAt handles a command exit observed while the task file was
// paused or already deleted: the file's location at exit time decides
// the outcome, not the exit code, since an operator that paused or
// deleted the task has already taken it out of this worker's custody.
func (w *Worker) finishAt(id string, loc queue.State, logger zerolog.Logger) (terminal bool, err error) {
	switch loc {
	case queue.Paused:
		logger.Info().Msg("task command exited while paused, leaving task file in place")
		return false, nil
	default:
		logger.Warn().Msg("task file was deleted externally, dropping task")
		return true, nil
	}
}
