package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ghostie/internal/cache"
	"ghostie/internal/daemon"
	"ghostie/internal/daemonctl"
	"ghostie/internal/logging"
)

const stopGracePeriod = 5 * time.Second

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the notification sync daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			stdout := cmd.OutOrStdout()
			if err := ensureToken(cmd, cfg); err != nil {
				return err
			}
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.Start(cfg, exe)
			var running *daemon.AlreadyRunningError
			if errors.As(err, &running) {
				fmt.Fprintf(stdout, "Daemon already running (pid %d)\n", running.PID)
				return nil
			}
			if err != nil {
				return err
			}
			ctx.logger(cmd.ErrOrStderr()).Debug("daemon launched",
				logging.Int("pid", result.PID),
				logging.String("stdout", result.StdoutPath),
				logging.String("stderr", result.StderrPath),
			)
			fmt.Fprintf(stdout, "Daemon started (pid %d)\n", result.PID)
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the notification sync daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.Stop(ctx.configValue(), stopGracePeriod)
			if err != nil {
				return err
			}
			if result.PID == 0 {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if !result.Exited {
				ctx.logger(cmd.ErrOrStderr()).Warn("daemon still running after SIGTERM",
					logging.Int("pid", result.PID),
					logging.Duration("waited", stopGracePeriod),
				)
			}
			fmt.Fprintf(stdout, "Daemon stopped (pid %d)\n", result.PID)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and cache status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			state, pid, err := daemonctl.Status(cfg)
			if err != nil {
				return err
			}

			store, err := cache.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}

			detail := state.String()
			if pid > 0 {
				detail = fmt.Sprintf("%s (pid %d)", state, pid)
			}
			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("State", stateKind(state), detail, colorize))
			fmt.Fprintln(stdout, renderStatusLine("PID file", statusInfo, cfg.PIDPath(), colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Cache", colorize) {
				fmt.Fprintln(stdout, line)
			}
			rows := [][]string{
				{"Database", cfg.CachePath()},
				{"Cached notifications", strconv.Itoa(count)},
				{"Window", fmt.Sprintf("%d days", cfg.PollingWindowDays)},
				{"Poll interval", cfg.PollInterval().String()},
			}
			fmt.Fprint(stdout, renderTable([]string{"Item", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintln(stdout)
			return nil
		},
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}

func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}
