package main

import (
	"github.com/spf13/cobra"

	"ghostie/internal/daemonrun"
)

func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	var detached bool
	cmd := &cobra.Command{
		Use:    "daemon",
		Short:  "Run the sync loop in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemonrun.Run(cmd.Context(), ctx.configValue(), daemonrun.Options{
				Detached: detached,
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
			})
		},
	}
	cmd.Flags().BoolVar(&detached, "detached", false, "Parent process already recorded the pid")
	_ = cmd.Flags().MarkHidden("detached")
	return cmd
}
