// Package tui implements the Bubble Tea inbox viewer behind `ghostie view`.
package tui
