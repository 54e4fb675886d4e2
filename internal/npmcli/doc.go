// Package npmcli builds typed npm invocations on top of execshell.
//
// Client knows the three commands the health check needs: a quiet listing of
// top-level dependencies, a reinstall that tolerates peer dependency
// conflicts, and a severity-filtered security audit.
package npmcli
