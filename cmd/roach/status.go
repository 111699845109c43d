package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ranjanr/roach/pkg/queue"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a per-state task count for a queue root",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("verbose", false, "List task ids under each state, not just counts")
}

func runStatus(cmd *cobra.Command, args []string) error {
	queueRoot, _ := cmd.Flags().GetString("queue-root")
	verbose, _ := cmd.Flags().GetBool("verbose")

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "STATE\tCOUNT")
	for _, s := range queue.States {
		ids, err := queue.ListSorted(queueRoot, s)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		fmt.Fprintf(tw, "%s\t%d\n", s, len(ids))
		if verbose {
			for _, id := range ids {
				fmt.Fprintf(tw, "  %s\t\n", id)
			}
		}
	}
	return nil
}
