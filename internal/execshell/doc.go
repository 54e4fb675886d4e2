// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions dephealth uses to
// run the package manager in a testable manner. Commands either capture their
// output for inspection or stream it to the user's terminal.
package execshell
