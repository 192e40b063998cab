// Package preflight provides readiness checks for the directories and
// services ghostie depends on.
//
// The CLI "ghostie doctor" command runs RunAll and renders each Result. Checks
// for disabled features are skipped.
package preflight
