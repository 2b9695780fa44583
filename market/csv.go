package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// Required leading columns of a bar CSV. Any further header columns become
// indicator columns on the loaded Series.
var requiredColumns = []string{"date", "open", "high", "low", "close", "volume"}

// LoadCSV reads an OHLCV series from a CSV file with a header row:
//
//	date,open,high,low,close,volume[,<indicator>...]
//
// Dates are parsed as 2006-01-02 with an RFC3339 fallback. Empty indicator
// cells become NaN (indicator not yet defined at that bar). Files ending in
// .xz are decompressed transparently.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load csv: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("load csv: xz: %w", err)
		}
		r = xr
	}

	return ReadCSV(r)
}

// ReadCSV parses a bar CSV from r. See LoadCSV for the expected layout.
func ReadCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv: header: %w", err)
	}
	if len(header) < len(requiredColumns) {
		return nil, fmt.Errorf("read csv: header needs at least %v, got %v", requiredColumns, header)
	}
	for i, want := range requiredColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("read csv: column %d must be %q, got %q", i, want, header[i])
		}
	}

	indNames := make([]string, 0, len(header)-len(requiredColumns))
	for _, h := range header[len(requiredColumns):] {
		indNames = append(indNames, strings.ToLower(strings.TrimSpace(h)))
	}

	var bars []Bar
	indVals := make([][]float64, len(indNames))

	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if len(row) != len(header) {
			return nil, fmt.Errorf("read csv: line %d has %d fields, want %d", line, len(row), len(header))
		}

		date, err := parseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("read csv: line %d: %w", line, err)
		}

		fields := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("read csv: line %d: bad %s %q: %w", line, requiredColumns[i+1], row[i+1], err)
			}
			fields[i] = v
		}

		bars = append(bars, Bar{
			Date:   date,
			Open:   fields[0],
			High:   fields[1],
			Low:    fields[2],
			Close:  fields[3],
			Volume: fields[4],
		})

		for i := range indNames {
			cell := strings.TrimSpace(row[len(requiredColumns)+i])
			if cell == "" {
				indVals[i] = append(indVals[i], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("read csv: line %d: bad %s %q: %w", line, indNames[i], cell, err)
			}
			indVals[i] = append(indVals[i], v)
		}
	}

	s := NewSeries(bars)
	for i, name := range indNames {
		if err := s.SetIndicator(name, indVals[i]); err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return t, nil
}
