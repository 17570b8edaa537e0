package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs <run-or-build-id>",
	Short: "Print the log of a run or build",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := getSdk(cmd)
		if err != nil {
			return err
		}
		logText, err := sdk.Client.Log(args[0]).Get(cmd.Context())
		if err != nil {
			exitIfClientError(err)
		}
		if logText == "" {
			fmt.Printf("No log found for %s\n", args[0])
			return nil
		}
		fmt.Print(logText)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
