package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/pkg/metrics"
)

// Columns names the CSV headers the loader maps onto model.Launch.
type Columns struct {
	Site            string
	PayloadMass     string
	Class           string
	BoosterVersion  string
	FlightNumber    string // optional
	BoosterCategory string // optional
}

// DefaultColumns matches the headers of spacex_launch_dash.csv.
var DefaultColumns = Columns{
	Site:            "Launch Site",
	PayloadMass:     "Payload Mass (kg)",
	Class:           "class",
	BoosterVersion:  "Booster Version",
	FlightNumber:    "Flight Number",
	BoosterCategory: "Booster Version Category",
}

type loader struct {
	comma   rune
	columns Columns
}

// columnIndex holds header positions; -1 marks an absent optional column.
type columnIndex struct {
	site, payload, class, booster, flight, category int
}

// LoadFile reads the launch table at path. A missing or unreadable file
// wraps ErrDataFile.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "data_file")
		return nil, fmt.Errorf("%w: %w", ErrDataFile, err)
	}
	defer func() { _ = f.Close() }()

	return Load(ctx, f, opts...)
}

// Load parses a launch table from r. Every row must parse; there is no
// repair of bad rows.
func Load(ctx context.Context, r io.Reader, opts ...Option) (*Dataset, error) {
	start := time.Now()
	l := &loader{comma: ',', columns: DefaultColumns}
	for _, opt := range opts {
		opt(l)
	}

	reader := csv.NewReader(r)
	reader.Comma = l.comma

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}
	idx, err := l.index(header)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "missing_column")
		return nil, err
	}

	var launches []model.Launch
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.RecordErrorByComponent("repository", "malformed_row")
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		launch, err := parseRow(row, idx)
		if err != nil {
			metrics.RecordErrorByComponent("repository", "malformed_row")
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		launches = append(launches, launch)
	}

	d := NewDataset(launches)
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Milliseconds()))
	return d, nil
}

func (l *loader) index(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	find := func(name string, required bool) (int, error) {
		if i, ok := pos[name]; ok {
			return i, nil
		}
		if required {
			return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		return -1, nil
	}

	var (
		idx columnIndex
		err error
	)
	if idx.site, err = find(l.columns.Site, true); err != nil {
		return idx, err
	}
	if idx.payload, err = find(l.columns.PayloadMass, true); err != nil {
		return idx, err
	}
	if idx.class, err = find(l.columns.Class, true); err != nil {
		return idx, err
	}
	if idx.booster, err = find(l.columns.BoosterVersion, true); err != nil {
		return idx, err
	}
	idx.flight, _ = find(l.columns.FlightNumber, false)
	idx.category, _ = find(l.columns.BoosterCategory, false)
	return idx, nil
}

func parseRow(row []string, idx columnIndex) (model.Launch, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	payload, err := strconv.ParseFloat(cell(idx.payload), 64)
	if err != nil || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return model.Launch{}, fmt.Errorf("payload mass %q is not a finite number", cell(idx.payload))
	}

	class, err := strconv.ParseFloat(cell(idx.class), 64)
	if err != nil || (class != 0 && class != 1) {
		return model.Launch{}, fmt.Errorf("class %q is not 0 or 1", cell(idx.class))
	}

	launch := model.Launch{
		Site:            cell(idx.site),
		PayloadMass:     payload,
		Class:           int(class),
		BoosterVersion:  cell(idx.booster),
		BoosterCategory: cell(idx.category),
	}
	if v := cell(idx.flight); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return model.Launch{}, fmt.Errorf("flight number %q is not an integer", v)
		}
		launch.FlightNumber = n
	}
	return launch, nil
}
