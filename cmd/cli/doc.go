// Package cli constructs the dephealth command-line interface.
//
// It wires the Cobra root command to the health check, loads configuration
// from embedded defaults, an optional config.yaml and DEPHEALTH_* environment
// variables, and builds the zap logger used for diagnostics.
package cli
