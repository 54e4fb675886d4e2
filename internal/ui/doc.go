// Package ui provides helpers for human-readable console output.
//
// It renders package manager command lifecycle events as concise log lines
// and decides whether status markers may be colored for the current terminal.
package ui
