package main

import (
	"github.com/spf13/cobra"

	"ghostie/internal/cache"
	"ghostie/internal/credentials"
	"ghostie/internal/github"
	"ghostie/internal/tui"
)

func newViewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse cached notifications (alias -V)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if err := ensureToken(cmd, cfg); err != nil {
				return err
			}
			token, err := credentials.Get(cfg)
			if err != nil {
				return err
			}
			client, err := github.NewClient(cfg, token)
			if err != nil {
				return err
			}
			store, err := cache.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			return tui.Run(cmd.Context(), store, client)
		},
	}
}
