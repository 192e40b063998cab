package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"ghostie/internal/config"
)

// Options describes daemon logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Stdout receives records below ERROR; Stderr receives ERROR records.
	Stdout io.Writer
	Stderr io.Writer
}

// New constructs the daemon logger. Nil writers default to the process streams.
func New(opts Options) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))
	addSource := levelVar.Level() <= slog.LevelDebug

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var build func(io.Writer) slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		build = func(w io.Writer) slog.Handler { return newLineHandler(w, levelVar, addSource) }
	case "json":
		build = func(w io.Writer) slog.Handler { return newJSONHandler(w, levelVar, addSource) }
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(newStreamSplitHandler(build(stdout), build(stderr), slog.LevelError)), nil
}

// NewFromConfig builds the daemon logger from the logging settings.
func NewFromConfig(cfg *config.Config, stdout, stderr io.Writer) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Stdout: stdout, Stderr: stderr})
	}
	return New(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Stdout: stdout,
		Stderr: stderr,
	})
}

// NewInteractive builds the logger used by foreground CLI commands. Colors are
// enabled only when w is a terminal.
func NewInteractive(w io.Writer, level string) *slog.Logger {
	noColor := true
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		fd := f.Fd()
		noColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
