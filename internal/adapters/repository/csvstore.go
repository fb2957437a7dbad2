package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/paddocklab/gridboss/internal/domain/model"
	"github.com/paddocklab/gridboss/pkg/logger"
	"github.com/paddocklab/gridboss/pkg/metrics"
)

// dateLayout is the dataset's date format for race dates and birth dates.
const dateLayout = "2006-01-02"

// requiredColumns is the dataset's fixed header contract.
var requiredColumns = []string{
	"race_id", "race_name", "year", "race_date", "circuit_name",
	"driver", "driver_dob", "driver_nationality", "constructor_name",
	"grid_starting_position", "final_position", "status", "points",
}

// CSVStore is a Store backed by a single CSV file. The file is read once;
// the parsed rows are immutable until an explicit Reload.
type CSVStore struct {
	mu sync.RWMutex

	path   string
	logger logger.Logger

	rows    []model.RaceEntry
	skipped int
	loaded  bool
}

// NewCSVStore creates a CSV-backed dataset store.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Load reads and parses the dataset file. A missing or unreadable file is
// fatal; malformed values inside a row degrade per field or skip that one row.
func (s *CSVStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx)
}

// Reload discards the cached rows and reads the file again.
func (s *CSVStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *CSVStore) loadLocked(ctx context.Context) error {
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpenDataset, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // validated per row against the header

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadDataset, err)
	}
	col, err := columnIndex(header)
	if err != nil {
		return err
	}

	rows := make([]model.RaceEntry, 0, 1024)
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadDataset, err)
		}
		if len(record) != len(header) {
			skipped++
			continue
		}
		entry, ok := parseEntry(record, col)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, entry)
	}

	s.rows = rows
	s.skipped = skipped
	s.loaded = true

	metrics.UpdateDatasetRows(len(rows))
	metrics.UpdateDatasetSkipped(skipped)
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "dataset loaded",
		logger.String("path", s.path),
		logger.Int("rows", len(rows)),
		logger.Int("skipped", skipped),
	)
	return nil
}

// Rows returns the cached dataset.
func (s *CSVStore) Rows(_ context.Context) []model.RaceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Count returns the number of loaded rows.
func (s *CSVStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Skipped returns the number of input rows dropped during parsing.
func (s *CSVStore) Skipped(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

func columnIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return col, nil
}

// parseEntry converts one CSV record into a RaceEntry. Identity and numeric
// fields must parse or the row is dropped; dates and the final position
// degrade to their zero/nil value so one bad cell cannot lose the row.
func parseEntry(record []string, col map[string]int) (model.RaceEntry, bool) {
	get := func(name string) string { return strings.TrimSpace(record[col[name]]) }

	e := model.RaceEntry{
		RaceID:            get("race_id"),
		RaceName:          get("race_name"),
		Circuit:           get("circuit_name"),
		Driver:            get("driver"),
		DriverNationality: get("driver_nationality"),
		Constructor:       get("constructor_name"),
		Status:            get("status"),
	}
	if e.RaceID == "" || e.Driver == "" || e.Circuit == "" || e.Constructor == "" {
		return model.RaceEntry{}, false
	}

	season, err := strconv.Atoi(get("year"))
	if err != nil {
		return model.RaceEntry{}, false
	}
	e.Season = season

	grid, err := strconv.Atoi(get("grid_starting_position"))
	if err != nil {
		return model.RaceEntry{}, false
	}
	e.Grid = grid

	points, err := strconv.ParseFloat(get("points"), 64)
	if err != nil {
		return model.RaceEntry{}, false
	}
	e.Points = points

	// Unparseable dates degrade to the zero time; the normalizer turns
	// that into a nil derived age.
	if t, err := time.Parse(dateLayout, get("race_date")); err == nil {
		e.RaceDate = t
	}
	if t, err := time.Parse(dateLayout, get("driver_dob")); err == nil {
		e.DriverDOB = t
	}

	// An empty or non-numeric final position means the entry was not
	// classified; that is data, not an error.
	if raw := get("final_position"); raw != "" {
		if pos, err := strconv.Atoi(raw); err == nil {
			e.FinalPosition = &pos
		}
	}
	return e, true
}
