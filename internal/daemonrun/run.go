package daemonrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"ghostie/internal/alerts"
	"ghostie/internal/cache"
	"ghostie/internal/config"
	"ghostie/internal/credentials"
	"ghostie/internal/daemon"
	"ghostie/internal/github"
	"ghostie/internal/logging"
	"ghostie/internal/poller"
)

// Options customizes a daemon run.
type Options struct {
	// Detached is set when the parent process already recorded our pid.
	Detached bool
	Stdout   io.Writer
	Stderr   io.Writer
	// Source replaces the GitHub client. No token is required when set.
	Source poller.Source
	// Sink replaces the configured alert sinks.
	Sink alerts.Sink
}

// Run executes the daemon until ctx is cancelled, SIGINT or SIGTERM arrives,
// or a synchronization cycle fails. The pid marker is removed on exit when it
// still names this process.
func Run(ctx context.Context, cfg *config.Config, opts Options) (err error) {
	if cfg == nil {
		return errors.New("daemon requires config")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.NewFromConfig(cfg, opts.Stdout, opts.Stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	mgr, err := daemon.NewManager(cfg)
	if err != nil {
		return err
	}
	pid := os.Getpid()
	if !opts.Detached {
		reg, regErr := mgr.Register()
		if regErr != nil {
			logger.Error("daemon registration failed", logging.Error(regErr))
			return regErr
		}
		if commitErr := reg.Commit(pid); commitErr != nil {
			return commitErr
		}
	}
	defer func() {
		if releaseErr := mgr.Release(pid); releaseErr != nil {
			logger.Warn("release pid marker", logging.Error(releaseErr))
		}
	}()

	source := opts.Source
	if source == nil {
		token, tokenErr := credentials.Get(cfg)
		if tokenErr != nil {
			logger.Error("load github token", logging.Error(tokenErr))
			return tokenErr
		}
		client, clientErr := github.NewClient(cfg, token)
		if clientErr != nil {
			logger.Error("create github client", logging.Error(clientErr))
			return clientErr
		}
		source = client
	}
	sink := opts.Sink
	if sink == nil {
		sink = alerts.NewSink(cfg)
	}

	store, err := cache.Open(cfg)
	if err != nil {
		logger.Error("open notification cache", logging.Error(err))
		return err
	}
	defer store.Close()

	p, err := poller.New(cfg, store, source, sink, logger)
	if err != nil {
		return err
	}

	logger.Info("ghostie daemon started",
		logging.String(logging.FieldEventType, "daemon_start"),
		logging.Int("pid", pid),
		logging.String("cache", store.Path()),
	)
	err = p.Run(signalCtx)
	logger.Info("ghostie daemon shutting down", logging.String(logging.FieldEventType, "daemon_stop"))
	return err
}
