// Package github reads the authenticated user's notification inbox through
// the GitHub REST API and converts threads into cache records.
package github
