package datagen

// Config holds configuration for the dataset generator
type Config struct {
	OutputFile     string // Destination CSV path
	Seasons        int    // Number of seasons to generate
	RacesPerSeason int    // Races per season
	GridSize       int    // Cars on the grid per race
	Drivers        int    // Size of the driver pool
	Constructors   int    // Size of the constructor pool
	Verbose        bool   // Enable verbose logging
}

// Stats holds generation statistics
type Stats struct {
	RacesGenerated   int
	EntriesGenerated int
	Finishes         int
	MechanicalDNFs   int
	Accidents        int
	OtherDNFs        int
}
