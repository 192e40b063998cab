// Package alerts delivers user-facing "new notifications" alerts.
//
// Delivery is best effort. Callers treat every error as non-fatal; a missing
// desktop notifier or an unreachable ntfy server must never stop polling.
package alerts
