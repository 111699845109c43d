package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ranjanr/roach/pkg/submit"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a task to the queue",
	Long: `Submit writes a new task file into the queue root's queued
directory and prints the completion-witness shell expression a
dependent task can use as its own precondition.

Examples:
  # Submit an unconditional task
  roach submit --queue-root /data/queue --cmd "python train.py"

  # Submit a task that waits for another
  dep=$(roach submit --queue-root /data/queue --cmd "python preprocess.py")
  roach submit --queue-root /data/queue --cmd "python train.py" --check "$dep"`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().String("cmd", "", "Command script to run (required)")
	submitCmd.Flags().String("check", "", "Precondition script; defaults to \"true\"")
	_ = submitCmd.MarkFlagRequired("cmd")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	queueRoot, _ := cmd.Flags().GetString("queue-root")
	command, _ := cmd.Flags().GetString("cmd")
	check, _ := cmd.Flags().GetString("check")

	witness, err := submit.Submit(queueRoot, command, check)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	fmt.Fprintln(os.Stdout, witness)
	return nil
}
