// Package daemonrun hosts the long-running daemon process: it wires the
// cache, GitHub client, alert sinks, and poller together and runs until a
// signal arrives or synchronization fails.
package daemonrun
