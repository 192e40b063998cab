// Package daemonctl implements the CLI side of the daemon lifecycle: starting
// a detached daemon, stopping it, and reporting its state.
package daemonctl
