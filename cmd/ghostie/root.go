package main

import (
	"github.com/spf13/cobra"
)

// shortAliases maps single-flag shortcuts onto their subcommands.
var shortAliases = map[string]string{
	"-V": "view",
	"-C": "count",
	"-P": "prune",
	"-L": "logs",
}

// rewriteAliases replaces a leading short alias with its subcommand name so
// `ghostie -V` behaves like `ghostie view`.
func rewriteAliases(args []string) []string {
	if len(args) == 0 {
		return args
	}
	name, ok := shortAliases[args[0]]
	if !ok {
		return args
	}
	out := make([]string, len(args))
	copy(out, args)
	out[0] = name
	return out
}

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "ghostie",
		Short:         "Sync GitHub notifications into a local cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, cmd := range newDaemonCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range newCacheCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range newLogsCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newDaemonRunCommand(ctx))
	rootCmd.AddCommand(newViewCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newTokenCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
