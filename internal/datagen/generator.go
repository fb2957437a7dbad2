package datagen

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/paddocklab/gridboss/pkg/logger"
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max).
func getRandomInt(max int) int {
	if max <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// driver is one synthetic driver with a fixed skill factor.
type driver struct {
	name        string
	dob         time.Time
	nationality string
	skill       float64 // [0, 1), higher is faster
}

// constructor is one synthetic team with fixed pace and reliability.
type constructor struct {
	name        string
	pace        float64 // [0, 1), higher is faster
	reliability float64 // [0, 1), higher means fewer mechanical DNFs
}

// Run generates a synthetic race-results CSV shaped like the real dataset:
// hazardous circuits DNF more, strong constructors score more, and driver
// skill shows through grid-to-finish movement.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Get()
	log.Info(ctx, "generating dataset",
		logger.Int("seasons", config.Seasons),
		logger.Int("racesPerSeason", config.RacesPerSeason),
		logger.Int("gridSize", config.GridSize),
		logger.String("outputFile", config.OutputFile),
	)

	drivers := buildDrivers(config.Drivers)
	constructors := buildConstructors(config.Constructors)
	stats := &Stats{}

	file, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, csvFilePermissionOctal)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{
		"race_id", "race_name", "year", "race_date", "circuit_name",
		"driver", "driver_dob", "driver_nationality", "constructor_name",
		"grid_starting_position", "final_position", "status", "points",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for season := 0; season < config.Seasons; season++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		default:
		}
		year := firstSeasonYear + season
		seats := assignSeats(drivers, constructors, config.GridSize)

		for round := 0; round < config.RacesPerSeason; round++ {
			circuit := circuits[round%len(circuits)]
			date := time.Date(year, seasonStartMonth, 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 0, round*raceWeekInterval)
			race := raceHeader{
				id:      uuid.New().String(),
				name:    circuit.Name + " Grand Prix",
				year:    year,
				date:    date,
				circuit: circuit.Name,
			}
			rows := generateRace(race, seats, circuit.Hazard, stats)
			for _, row := range rows {
				if err := w.Write(row); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
			stats.RacesGenerated++
		}

		if config.Verbose {
			log.Info(ctx, "season generated",
				logger.Int("year", year),
				logger.Int("entriesSoFar", stats.EntriesGenerated),
			)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	log.Info(ctx, "dataset generated",
		logger.Int("races", stats.RacesGenerated),
		logger.Int("entries", stats.EntriesGenerated),
		logger.Int("finishes", stats.Finishes),
		logger.Int("mechanicalDNFs", stats.MechanicalDNFs),
		logger.Int("accidents", stats.Accidents),
	)
	return stats, nil
}

// raceHeader carries the per-race columns shared by every row of one race.
type raceHeader struct {
	id      string
	name    string
	year    int
	date    time.Time
	circuit string
}

// seat binds a driver to a constructor for one season.
type seat struct {
	driver      *driver
	constructor *constructor
}

func buildDrivers(n int) []driver {
	out := make([]driver, n)
	for i := range out {
		first := firstNames[getRandomInt(len(firstNames))]
		last := lastNames[i%len(lastNames)]
		debutAge := minDriverAgeAtDebut + getRandomInt(maxDriverAgeAtDebut-minDriverAgeAtDebut)
		dob := time.Date(firstSeasonYear-debutAge, time.Month(1+getRandomInt(12)), 1+getRandomInt(28), 0, 0, 0, 0, time.UTC)
		out[i] = driver{
			name:        first + " " + last,
			dob:         dob,
			nationality: nationalities[getRandomInt(len(nationalities))],
			skill:       getRandomFloat(),
		}
	}
	return out
}

func buildConstructors(n int) []constructor {
	out := make([]constructor, n)
	for i := range out {
		out[i] = constructor{
			name:        constructorNames[i%len(constructorNames)],
			pace:        getRandomFloat(),
			reliability: getRandomFloat(),
		}
	}
	return out
}

// assignSeats pairs drivers with constructors for a season, two per team,
// until the grid is full.
func assignSeats(drivers []driver, constructors []constructor, gridSize int) []seat {
	seats := make([]seat, 0, gridSize)
	for i := 0; i < gridSize && i < len(drivers); i++ {
		team := &constructors[(i/defaultDriversPerTeam)%len(constructors)]
		seats = append(seats, seat{driver: &drivers[i], constructor: team})
	}
	return seats
}

// generateRace produces the CSV rows for one race. Grid order follows
// combined driver and car performance with noise; DNFs are drawn from the
// circuit hazard and the constructor's reliability.
func generateRace(race raceHeader, seats []seat, hazard float64, stats *Stats) [][]string {
	type runner struct {
		seat        seat
		grid        int
		performance float64
		dnf         bool
		status      string
	}

	runners := make([]runner, len(seats))
	for i, s := range seats {
		perf := s.driver.skill*driverSkillSpread + s.constructor.pace*constructorPaceSpread + getRandomFloat()*0.1
		runners[i] = runner{seat: s, performance: perf}
	}

	// Grid from performance with qualifying noise.
	order := make([]int, len(runners))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		na := runners[order[a]].performance + getRandomFloat()*float64(gridNoise)/float64(len(runners)+1)
		nb := runners[order[b]].performance + getRandomFloat()*float64(gridNoise)/float64(len(runners)+1)
		return na > nb
	})
	for pos, idx := range order {
		runners[idx].grid = pos + 1
	}

	// Draw DNFs.
	for i := range runners {
		p := baseDNFProbability + hazard*hazardDNFWeight + (1-runners[i].seat.constructor.reliability)*0.1
		if getRandomFloat() < p {
			runners[i].dnf = true
			switch roll := getRandomFloat(); {
			case roll < mechanicalShare:
				runners[i].status = mechanicalCauses[getRandomInt(len(mechanicalCauses))]
				stats.MechanicalDNFs++
			case roll < mechanicalShare+accidentShare:
				runners[i].status = accidentCauses[getRandomInt(len(accidentCauses))]
				stats.Accidents++
			default:
				runners[i].status = otherCauses[getRandomInt(len(otherCauses))]
				stats.OtherDNFs++
			}
		}
	}

	// Classify finishers by race performance.
	finishers := make([]int, 0, len(runners))
	for i := range runners {
		if !runners[i].dnf {
			finishers = append(finishers, i)
		}
	}
	sort.SliceStable(finishers, func(a, b int) bool {
		return runners[finishers[a]].performance > runners[finishers[b]].performance
	})

	rows := make([][]string, 0, len(runners))
	for pos, idx := range finishers {
		r := &runners[idx]
		status := finishedStatuses[0]
		if getRandomFloat() < lappedShare && pos >= len(finishers)/2 {
			status = lappedStatuses[getRandomInt(maxLapsDown)]
		}
		points := 0.0
		if pos < pointsPayingPositions {
			points = pointsByPosition[pos]
		}
		rows = append(rows, formatRow(race, r.seat, r.grid, strconv.Itoa(pos+1), status, points))
		stats.Finishes++
		stats.EntriesGenerated++
	}
	for i := range runners {
		if runners[i].dnf {
			rows = append(rows, formatRow(race, runners[i].seat, runners[i].grid, "", runners[i].status, 0))
			stats.EntriesGenerated++
		}
	}
	return rows
}

func formatRow(race raceHeader, s seat, grid int, finalPos, status string, points float64) []string {
	return []string{
		race.id,
		race.name,
		strconv.Itoa(race.year),
		race.date.Format("2006-01-02"),
		race.circuit,
		s.driver.name,
		s.driver.dob.Format("2006-01-02"),
		s.driver.nationality,
		s.constructor.name,
		strconv.Itoa(grid),
		finalPos,
		status,
		strconv.FormatFloat(points, 'f', -1, 64),
	}
}
