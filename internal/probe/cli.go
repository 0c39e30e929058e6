package probe

import (
	"fmt"
	"os"

	"github.com/okian/launchboard/pkg/logger"
)

// SetupLogging initializes the logger for a probe run.
func SetupLogging(verbose bool) error {
	if err := logger.Init(logger.WithOutput(os.Stdout)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the probe.
func ShowHelp() {
	os.Stdout.WriteString(`Launchboard Probe
=================

Sweeps every launch site and payload window the dashboard offers and checks
the distribution and correlation views over HTTP.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8052")
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Checks:
  - the ALL distribution has one slice per site and sums to the success count
  - a site distribution sums to the number of launches at that site
  - correlation views stay inside the requested site and payload window
  - the full-range ALL correlation is the whole table in order
  - inverted windows and unknown sites yield empty views

Exit status is non-zero when any check fails.
`)
}
