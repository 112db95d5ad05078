package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted error to stderr and exits with code 1. Tool
// entry points use it so fatal misconfiguration reads the same everywhere.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
