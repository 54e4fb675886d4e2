package main

import (
	"fmt"
	"os"

	"github.com/temirov/dephealth/cmd/cli"
)

const (
	exitErrorTemplateConstant = "❌ %v\n"
)

// main runs the dependency health check and exits non-zero only when it could not run.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
