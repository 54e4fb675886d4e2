// Package utils exposes reusable helpers consumed by the CLI and its services.
//
// It houses ConfigurationLoader and LoggerFactory abstractions that integrate
// Viper, environment variables, and zap logging. CommandContextAccessor carries
// the active configuration file through cobra command contexts, and
// FlushingWriter streams package manager output to the terminal.
package utils
