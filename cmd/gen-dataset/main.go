package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/paddocklab/gridboss/internal/datagen"
)

// Default configuration constants.
const (
	defaultSeasons      = 30
	defaultRaces        = 18
	defaultGridSize     = 22
	defaultDrivers      = 60
	defaultConstructors = 12
	defaultGenTimeout   = 5 * time.Minute
)

func main() {
	var (
		output       = flag.String("output", "f1_data.csv", "Destination CSV file")
		seasons      = flag.Int("seasons", defaultSeasons, "Number of seasons to generate")
		races        = flag.Int("races", defaultRaces, "Races per season")
		grid         = flag.Int("grid", defaultGridSize, "Cars on the grid per race")
		drivers      = flag.Int("drivers", defaultDrivers, "Size of the driver pool")
		constructors = flag.Int("constructors", defaultConstructors, "Size of the constructor pool")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		datagen.ShowHelp()
		return
	}

	if err := datagen.SetupLogging(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultGenTimeout)
	defer cancel()

	config := &datagen.Config{
		OutputFile:     *output,
		Seasons:        *seasons,
		RacesPerSeason: *races,
		GridSize:       *grid,
		Drivers:        *drivers,
		Constructors:   *constructors,
		Verbose:        *verbose,
	}

	if _, err := datagen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		return
	}
}
