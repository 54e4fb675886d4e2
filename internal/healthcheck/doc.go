// Package healthcheck verifies that a multi-workspace npm project has resolvable dependencies.
//
// The project root is checked first, followed by each configured workspace in
// declared order. A workspace whose dependencies do not resolve gets exactly one
// reinstall attempt. A single security audit runs after every workspace was
// visited. Per-workspace failures are reported and never abort the run; only
// invoking the check outside the project root is fatal.
//
// CommandBuilder wires the cobra command, Service drives the workflow
// programmatically, and Report summarizes the outcome of a run.
package healthcheck
