package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ghostie/internal/credentials"
	"ghostie/internal/github"
	"ghostie/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that ghostie is ready to run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			var auth preflight.AuthChecker
			if token, err := credentials.Get(cfg); err == nil {
				client, err := github.NewClient(cfg, token)
				if err != nil {
					return err
				}
				auth = client
			}

			results := preflight.RunAll(cmd.Context(), cfg, auth)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, r := range results {
				fmt.Fprintln(stdout, renderStatusLine(r.Name, resultKind(r), r.Detail, colorize))
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
