package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runWaitTimeout time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Inspect and control actor runs",
}

var runGetCmd = &cobra.Command{
	Use:   "get <run-id>",
	Short: "Show a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := getSdk(cmd)
		if err != nil {
			return err
		}
		run, err := sdk.Client.Run(args[0]).Get(cmd.Context())
		if err != nil {
			exitIfClientError(err)
		}
		if run == nil {
			fmt.Printf("Run %s not found\n", args[0])
			return nil
		}
		printRun(run.ID, string(run.Status), run.StartedAt, run.FinishedAt)
		return nil
	},
}

var runWaitCmd = &cobra.Command{
	Use:   "wait <run-id>",
	Short: "Wait for a run to finish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := getSdk(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("⏳ Waiting for run: %s\n", args[0])
		run, err := sdk.Client.Run(args[0]).WaitForFinish(cmd.Context(), runWaitTimeout)
		if err != nil {
			exitIfClientError(err)
		}
		printRun(run.ID, string(run.Status), run.StartedAt, run.FinishedAt)
		return nil
	},
}

var runAbortCmd = &cobra.Command{
	Use:   "abort <run-id>",
	Short: "Abort a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := getSdk(cmd)
		if err != nil {
			return err
		}
		run, err := sdk.Client.Run(args[0]).Abort(cmd.Context())
		if err != nil {
			exitIfClientError(err)
		}
		fmt.Printf("Run %s is now %s\n", run.ID, run.Status)
		return nil
	},
}

func printRun(id, status string, startedAt, finishedAt *time.Time) {
	fmt.Printf("Run:      %s\n", id)
	fmt.Printf("Status:   %s\n", status)
	if startedAt != nil {
		fmt.Printf("Started:  %s\n", startedAt.Format(time.RFC3339))
	}
	if finishedAt != nil {
		fmt.Printf("Finished: %s\n", finishedAt.Format(time.RFC3339))
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.AddCommand(runGetCmd)
	runCmd.AddCommand(runWaitCmd)
	runCmd.AddCommand(runAbortCmd)

	runWaitCmd.Flags().DurationVar(&runWaitTimeout, "timeout", 0, "Max time to wait (0 = forever)")
}
