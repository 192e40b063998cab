// Package logging assembles the slog loggers used by ghostie.
//
// The detached daemon writes single-line records shaped as
// "[<RFC3339 timestamp>][LEVEL] message key=value" so the log sink can merge
// its stdout and stderr captures chronologically. Records below ERROR go to
// stdout and ERROR records go to stderr. Interactive commands log through a
// tint handler that colors output only when attached to a terminal.
package logging
