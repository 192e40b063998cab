package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghostie/internal/logsink"
)

func newLogsCommands(ctx *commandContext) []*cobra.Command {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Print daemon output merged by timestamp (alias -L)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := logsink.New(ctx.configValue())
			if err != nil {
				return err
			}
			return sink.Replay(cmd.OutOrStdout())
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear-logs",
		Short: "Truncate the daemon log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := logsink.New(ctx.configValue())
			if err != nil {
				return err
			}
			if err := sink.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logs cleared")
			return nil
		},
	}

	return []*cobra.Command{logsCmd, clearCmd}
}
