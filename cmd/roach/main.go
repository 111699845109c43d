package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ranjanr/roach/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "roach",
	Short:   "roach - a filesystem-backed task queue for experiment orchestration",
	Version: Version,
	Long: `roach schedules shell-command tasks across any number of workers
that share a filesystem, using nothing but file renames for
coordination. No daemon, no database: the queue root's six
subdirectories (queued, checking, active, paused, done, failed) are
the entire state.`,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("roach version %s\ncommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("queue-root", "", "Queue root directory (required)")
	rootCmd.PersistentFlags().String("config", "", "Optional YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	_ = rootCmd.MarkPersistentFlagRequired("queue-root")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(statusCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}
