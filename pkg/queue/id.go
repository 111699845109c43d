package queue

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// NewTaskID returns a new, lexicographically-sortable task id:
// task_YYYYMMDD_HHMMSS_<9-digit-nanos>, exactly the grammar spec.md §6
// defines. The nanosecond tail makes collisions between submitters on the
// same host effectively impossible.
func NewTaskID() string {
	now := time.Now()
	nanos := now.UnixNano() % 1_000_000_000
	return fmt.Sprintf("task_%s_%09d", now.Format("20060102_150405"), nanos)
}

// NewWorkerID returns this process's identity string:
// worker_YYYYMMDD_HHMMSS_<hostname>_<pid>_gpus=<CUDA_VISIBLE_DEVICES>.
// It is embedded in the task file banner for attribution only; it plays
// no role in claim coordination (spec.md §3).
func NewWorkerID() string {
	now := time.Now()
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	if idx := strings.IndexByte(hostname, '.'); idx >= 0 {
		hostname = hostname[:idx]
	}
	return fmt.Sprintf("worker_%s_%s_%d_gpus=%s",
		now.Format("20060102_150405"), hostname, os.Getpid(), os.Getenv("CUDA_VISIBLE_DEVICES"))
}
