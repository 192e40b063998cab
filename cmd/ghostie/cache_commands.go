package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ghostie/internal/cache"
)

func newCacheCommands(ctx *commandContext) []*cobra.Command {
	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of cached notifications (alias -C)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.Open(ctx.configValue())
			if err != nil {
				return err
			}
			defer store.Close()
			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.Open(ctx.configValue())
			if err != nil {
				return err
			}
			defer store.Close()
			notifications, err := store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()
			if len(notifications) == 0 {
				fmt.Fprintln(stdout, "No cached notifications")
				return nil
			}
			sort.SliceStable(notifications, func(i, j int) bool {
				return notifications[i].UpdatedAt.After(notifications[j].UpdatedAt)
			})
			if limit > 0 && len(notifications) > limit {
				notifications = notifications[:limit]
			}
			rows := make([][]string, 0, len(notifications))
			for _, n := range notifications {
				rows = append(rows, []string{
					n.ID,
					n.Name,
					n.Kind,
					n.Subject,
					n.UpdatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprint(stdout, renderColumns([]column{
				{Header: "ID", Align: alignRight},
				{Header: "Repository", MaxWidth: 40},
				{Header: "Type"},
				{Header: "Subject", MaxWidth: 60},
				{Header: "Updated"},
			}, rows))
			fmt.Fprintln(stdout)
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many notifications")

	var reset bool
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete every cached notification (alias -P)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			stdout := cmd.OutOrStdout()
			if reset {
				store, err := cache.Reset(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
				fmt.Fprintf(stdout, "Cache reset at %s\n", store.Path())
				return nil
			}
			store, err := cache.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			removed, err := store.DeleteAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Pruned %s cached notifications\n", strconv.FormatInt(removed, 10))
			return nil
		},
	}
	pruneCmd.Flags().BoolVar(&reset, "reset", false, "Drop and recreate the cache schema")

	return []*cobra.Command{countCmd, listCmd, pruneCmd}
}
