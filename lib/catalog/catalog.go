// Package catalog loads the anime CSV into an immutable, in-memory Dataset.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/icco/animedash/models"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Dataset is an ordered, read-only sequence of records. It is never mutated
// after Load returns, so it is safe to share between goroutines.
type Dataset struct {
	records []models.Anime
}

// NewDataset builds a Dataset from records, assigning each its row position.
// The slice is copied.
func NewDataset(records []models.Anime) *Dataset {
	rs := make([]models.Anime, len(records))
	copy(rs, records)
	for i := range rs {
		rs[i].Position = i
	}
	return &Dataset{records: rs}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the record at row position i.
func (d *Dataset) At(i int) (models.Anime, bool) {
	if i < 0 || i >= len(d.records) {
		return models.Anime{}, false
	}
	return d.records[i], true
}

// All iterates over the records in row order.
func (d *Dataset) All() iter.Seq2[int, models.Anime] {
	return func(yield func(int, models.Anime) bool) {
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of every record, suitable for bulk inserts.
func (d *Dataset) Records() []models.Anime {
	rs := make([]models.Anime, len(d.records))
	copy(rs, d.records)
	return rs
}

type column int

const (
	colName column = iota
	colEnglishName
	colJapaneseName
	colSynopsis
	colType
	colStudios
	colAired
	colCompleted
	colGenres
	colScore
	colPremiered
	colDuration
	colMembers
	numColumns
)

// headerAliases maps lowercased header names onto columns. The upstream
// dataset spells the synopsis column "sypnopsis".
var headerAliases = map[string]column{
	"name":          colName,
	"english name":  colEnglishName,
	"english_name":  colEnglishName,
	"japanese name": colJapaneseName,
	"japanese_name": colJapaneseName,
	"sypnopsis":     colSynopsis,
	"synopsis":      colSynopsis,
	"type":          colType,
	"studios":       colStudios,
	"aired":         colAired,
	"completed":     colCompleted,
	"genres":        colGenres,
	"score":         colScore,
	"premiered":     colPremiered,
	"duration":      colDuration,
	"members":       colMembers,
}

// LoadFile reads the CSV file at path.
func LoadFile(path string) (*Dataset, error) {
	// #nosec G304 - path comes from operator configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	ds, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return ds, nil
}

// Load parses CSV data with a header row into a Dataset. Only the Name
// column is required; empty cells and unparsable or non-finite numbers
// become missing values rather than errors. Genres and Studios are kept
// verbatim so that splitting them sees every token.
func Load(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty catalog: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make([]int, numColumns)
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if c, ok := headerAliases[key]; ok && idx[c] == -1 {
			idx[c] = i
		}
	}
	if idx[colName] == -1 {
		return nil, fmt.Errorf("%w: Name", ErrMissingColumn)
	}

	var records []models.Anime
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+1, err)
		}
		records = append(records, parseRow(row, idx))
	}

	return NewDataset(records), nil
}

func parseRow(row []string, idx []int) models.Anime {
	raw := func(c column) *string {
		i := idx[c]
		if i < 0 || i >= len(row) || row[i] == "" {
			return nil
		}
		v := row[i]
		return &v
	}
	cell := func(c column) *string {
		v := raw(c)
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			return nil
		}
		return &t
	}

	a := models.Anime{
		EnglishName:  cell(colEnglishName),
		JapaneseName: cell(colJapaneseName),
		Synopsis:     cell(colSynopsis),
		Type:         cell(colType),
		Studios:      raw(colStudios),
		Aired:        cell(colAired),
		Completed:    parseFloat(cell(colCompleted)),
		Genres:       raw(colGenres),
		Score:        parseFloat(cell(colScore)),
		Premiered:    cell(colPremiered),
		Duration:     cell(colDuration),
		Members:      parseInt(cell(colMembers)),
	}
	if name := cell(colName); name != nil {
		a.Name = *name
	}
	return a
}

func parseFloat(s *string) *float64 {
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseInt accepts plain integers and floats such as "1200.0". Floats are
// truncated; values outside the int64 range are missing.
func parseInt(s *string) *int64 {
	if s == nil {
		return nil
	}
	if n, err := strconv.ParseInt(*s, 10, 64); err == nil {
		return &n
	}
	f := parseFloat(s)
	if f == nil || *f < math.MinInt64 || *f >= math.MaxInt64 {
		return nil
	}
	n := int64(*f)
	return &n
}
