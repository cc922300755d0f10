// Package importer loads distance and souvenir tables from CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
)

// Options controls CSV parsing and how rows are written
type Options struct {
	// HasHeader skips the first record
	HasHeader bool
	// Mode is passed to SetBatch; the zero value keeps existing rows
	Mode database.BatchMode
}

// Skip describes a record that was not imported
type Skip struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Report summarizes an import
type Report struct {
	Read     int    `json:"read"`
	Imported int    `json:"imported"`
	Skipped  []Skip `json:"skipped,omitempty"`
}

// ErrBadRecord is returned for a single record that cannot be parsed
type ErrBadRecord struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *ErrBadRecord) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s %q: %s", e.Line, e.Field, e.Value, e.Reason)
}

// recordFunc converts one trimmed record; returning *ErrBadRecord skips it
type recordFunc func(line int, fields []string) error

func readRecords(r io.Reader, opts Options, width int, fn recordFunc) (*Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	report := &Report{}
	first := true

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.Read++
				report.Skipped = append(report.Skipped, Skip{Line: parseErr.StartLine, Reason: parseErr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if first {
			first = false
			if opts.HasHeader {
				continue
			}
		}

		// Whitespace-only lines
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}

		report.Read++
		if len(fields) != width {
			report.Skipped = append(report.Skipped, Skip{
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", width, len(fields)),
			})
			continue
		}

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if err := fn(line, fields); err != nil {
			var bad *ErrBadRecord
			if errors.As(err, &bad) {
				report.Skipped = append(report.Skipped, Skip{Line: bad.Line, Reason: bad.Error()})
				continue
			}
			return nil, err
		}
		report.Imported++
	}

	return report, nil
}

func parseAmount(line int, field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ErrBadRecord{Line: line, Field: field, Value: value, Reason: "not a number"}
	}
	if v < 0 {
		return 0, &ErrBadRecord{Line: line, Field: field, Value: value, Reason: "must not be negative"}
	}
	return v, nil
}

func requireName(line int, field, value string) error {
	if value == "" {
		return &ErrBadRecord{Line: line, Field: field, Value: value, Reason: "must not be blank"}
	}
	return nil
}

// ReadDistances parses start,end,distance records
func ReadDistances(r io.Reader, opts Options) ([]models.Distance, *Report, error) {
	var distances []models.Distance

	report, err := readRecords(r, opts, 3, func(line int, f []string) error {
		if err := requireName(line, "start college", f[0]); err != nil {
			return err
		}
		if err := requireName(line, "end college", f[1]); err != nil {
			return err
		}
		if f[0] == f[1] {
			return &ErrBadRecord{Line: line, Reason: "start and end college are the same"}
		}
		miles, err := parseAmount(line, "distance", f[2])
		if err != nil {
			return err
		}
		distances = append(distances, models.Distance{StartCollege: f[0], EndCollege: f[1], Miles: miles})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return distances, report, nil
}

// ReadSouvenirs parses college,souvenir,price records
func ReadSouvenirs(r io.Reader, opts Options) ([]models.Souvenir, *Report, error) {
	var souvenirs []models.Souvenir

	report, err := readRecords(r, opts, 3, func(line int, f []string) error {
		if err := requireName(line, "college", f[0]); err != nil {
			return err
		}
		if err := requireName(line, "souvenir", f[1]); err != nil {
			return err
		}
		price, err := parseAmount(line, "price", strings.TrimPrefix(f[2], "$"))
		if err != nil {
			return err
		}
		souvenirs = append(souvenirs, models.Souvenir{College: f[0], Name: f[1], Price: price})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return souvenirs, report, nil
}

func batchMode(opts Options) database.BatchMode {
	if opts.Mode == "" {
		return database.BatchIgnore
	}
	return opts.Mode
}

// ImportDistances reads distances from r and writes them through the store.
// Report.Imported counts rows actually written.
func ImportDistances(ctx context.Context, store database.DataStore, r io.Reader, opts Options) (*Report, error) {
	distances, report, err := ReadDistances(r, opts)
	if err != nil {
		return nil, err
	}

	written, err := store.Distances().SetBatch(ctx, distances, batchMode(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to store distances: %w", err)
	}
	report.Imported = written

	log.Printf("[IMPORT] Distances: read=%d imported=%d skipped=%d mode=%s",
		report.Read, report.Imported, len(report.Skipped), batchMode(opts))
	return report, nil
}

// ImportSouvenirs reads souvenirs from r and writes them through the store
func ImportSouvenirs(ctx context.Context, store database.DataStore, r io.Reader, opts Options) (*Report, error) {
	souvenirs, report, err := ReadSouvenirs(r, opts)
	if err != nil {
		return nil, err
	}

	written, err := store.Souvenirs().SetBatch(ctx, souvenirs, batchMode(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to store souvenirs: %w", err)
	}
	report.Imported = written

	log.Printf("[IMPORT] Souvenirs: read=%d imported=%d skipped=%d mode=%s",
		report.Read, report.Imported, len(report.Skipped), batchMode(opts))
	return report, nil
}
