package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ranjanr/roach/pkg/config"
	"github.com/ranjanr/roach/pkg/log"
	"github.com/ranjanr/roach/pkg/metrics"
	"github.com/ranjanr/roach/pkg/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a worker that claims and executes tasks",
	Long: `worker polls the queue root, claims at most one task at a time,
runs its precondition and command, and retires it to done or failed.
It always exits 0 on graceful shutdown (SIGTERM or empty queue) — a
non-zero exit means a programming fault, not a task failure.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().Duration("poll-interval", time.Second, "Interval between queue scans")
	workerCmd.Flags().Bool("persist", false, "Keep running and idling instead of exiting when the queue is empty")
	workerCmd.Flags().Bool("one-task", false, "Exit after the first task reaches a terminal state")
	workerCmd.Flags().String("metrics-addr", "", "If set, serve Prometheus metrics on this address (e.g. :9090)")
}

func runWorker(cmd *cobra.Command, args []string) error {
	queueRoot, _ := cmd.Flags().GetString("queue-root")
	configPath, _ := cmd.Flags().GetString("config")
	pollInterval, _ := cmd.Flags().GetDuration("poll-interval")
	persist, _ := cmd.Flags().GetBool("persist")
	oneTask, _ := cmd.Flags().GetBool("one-task")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.QueueRoot != "" && queueRoot == "" {
		queueRoot = cfg.QueueRoot
	}
	if d, ok := cfg.PollInterval(); ok && !cmd.Flags().Changed("poll-interval") {
		pollInterval = d
	}
	if cfg.Metrics.Addr != "" && metricsAddr == "" {
		metricsAddr = cfg.Metrics.Addr
	}
	logLevel, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	if cfg.Log.Level != "" && !cmd.Flags().Changed("log-level") {
		logLevel = cfg.Log.Level
	}
	if cfg.Log.JSON && !cmd.Flags().Changed("log-json") {
		logJSON = true
	}
	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON})

	w, err := worker.New(worker.Config{
		QueueRoot:    queueRoot,
		PollInterval: pollInterval,
		Persist:      persist,
		OneTask:      oneTask,
	})
	if err != nil {
		return fmt.Errorf("worker: %w", err)
	}

	if metricsAddr != "" {
		collector := metrics.NewCollector(queueRoot, 15*time.Second)
		collector.Start()
		defer collector.Stop()

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		server := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithComponent("metrics").Error().Err(err).Msg("metrics server exited")
			}
		}()
		defer server.Close()
	}

	log.WithWorkerID(w.ID()).Info().Str("queue_root", queueRoot).Msg("worker starting")
	return w.Run()
}
