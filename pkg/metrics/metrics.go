package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QueueDepth reports the number of task files currently sitting in
	// each state directory of a queue root.
	QueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roach_queue_depth",
			Help: "Number of task files in a queue state directory",
		},
		[]string{"queue", "state"},
	)

	TasksClaimed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roach_tasks_claimed_total",
			Help: "Total number of tasks a worker won the claim race for",
		},
		[]string{"worker_id"},
	)

	TasksDone = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roach_tasks_done_total",
			Help: "Total number of tasks that completed with exit code 0",
		},
		[]string{"worker_id"},
	)

	TasksFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roach_tasks_failed_total",
			Help: "Total number of tasks that completed with a non-zero exit code",
		},
		[]string{"worker_id"},
	)

	PreconditionRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roach_precondition_rejections_total",
			Help: "Total number of tasks returned to queued because their precondition failed",
		},
		[]string{"worker_id"},
	)

	TaskDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roach_task_duration_seconds",
			Help:    "Wall-clock time a task spent running as an active subprocess",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(QueueDepth)
	prometheus.MustRegister(TasksClaimed)
	prometheus.MustRegister(TasksDone)
	prometheus.MustRegister(TasksFailed)
	prometheus.MustRegister(PreconditionRejections)
	prometheus.MustRegister(TaskDuration)
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
