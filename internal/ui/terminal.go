package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	noColorEnvironmentVariableConstant      = "NO_COLOR"
	forceColorEnvironmentVariableConstant   = "CLICOLOR_FORCE"
	colorEnabledEnvironmentVariableConstant = "CLICOLOR"
	forceColorEnabledValueConstant          = "1"
	colorDisabledValueConstant              = "0"
)

// EnvironmentLookup reads environment variables.
type EnvironmentLookup func(name string) string

// TerminalDetector reports whether a file descriptor is attached to a terminal.
type TerminalDetector func(fileDescriptor int) bool

// ColorPolicy decides whether console output should carry ANSI colors.
type ColorPolicy struct {
	LookupEnvironment EnvironmentLookup
	IsTerminal        TerminalDetector
}

// NewColorPolicy builds a policy backed by the process environment and golang.org/x/term.
func NewColorPolicy() ColorPolicy {
	return ColorPolicy{LookupEnvironment: os.Getenv, IsTerminal: term.IsTerminal}
}

// ShouldUseColor returns true when ANSI colors should be used for the file.
// It respects NO_COLOR, CLICOLOR_FORCE, CLICOLOR, and TTY detection, in that order.
func (policy ColorPolicy) ShouldUseColor(output *os.File) bool {
	lookupEnvironment := policy.LookupEnvironment
	if lookupEnvironment == nil {
		lookupEnvironment = os.Getenv
	}
	isTerminal := policy.IsTerminal
	if isTerminal == nil {
		isTerminal = term.IsTerminal
	}

	if lookupEnvironment(noColorEnvironmentVariableConstant) != "" {
		return false
	}
	if strings.TrimSpace(lookupEnvironment(forceColorEnvironmentVariableConstant)) == forceColorEnabledValueConstant {
		return true
	}
	if strings.TrimSpace(lookupEnvironment(colorEnabledEnvironmentVariableConstant)) == colorDisabledValueConstant {
		return false
	}
	if output == nil {
		return false
	}
	return isTerminal(int(output.Fd()))
}
