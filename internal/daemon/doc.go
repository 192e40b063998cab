// Package daemon manages the single background ghostie instance.
//
// A pid marker in the runtime directory records the running daemon. The
// marker is Absent when no file exists, Stale when it names a process that is
// gone, and Live otherwise. Registration holds a flock on a sibling lock file
// so two concurrent start commands cannot both observe Absent and proceed.
package daemon
