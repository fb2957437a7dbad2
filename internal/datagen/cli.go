package datagen

import (
	"fmt"
	"os"

	"github.com/paddocklab/gridboss/pkg/logger"
)

// SetupLogging initializes the shared logger for the CLI tool.
func SetupLogging() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the dataset generator.
func ShowHelp() {
	os.Stdout.WriteString(`Gridboss Dataset Generator
==========================

Generates a synthetic race-results CSV for local development and load tests.

Usage:
  go run cmd/gen-dataset/main.go [options]

Options:
  -output string
        Destination CSV file (default "f1_data.csv")
  -seasons int
        Number of seasons to generate (default 30)
  -races int
        Races per season (default 18)
  -grid int
        Cars on the grid per race (default 22)
  -drivers int
        Size of the driver pool (default 60)
  -constructors int
        Size of the constructor pool (default 12)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate with default settings
  go run cmd/gen-dataset/main.go

  # A bigger grid over more seasons
  go run cmd/gen-dataset/main.go -seasons 50 -grid 26 -output big.csv
`)
}
