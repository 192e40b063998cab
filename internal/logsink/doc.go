// Package logsink owns the two capture files the detached daemon writes to
// and replays them as a single chronological stream.
package logsink
