package catalog

import (
	"log/slog"
	"sync"
	"time"
)

// Source loads the catalog file on first use and keeps the result for the
// life of the process. A failed load is cached as well; the file is never
// re-read.
type Source struct {
	path   string
	logger *slog.Logger
	load   func() (*Dataset, error)
}

// NewSource returns a Source for the CSV file at path.
func NewSource(path string, logger *slog.Logger) *Source {
	s := &Source{path: path, logger: logger}
	s.load = sync.OnceValues(s.readFile)
	return s
}

// Path returns the configured catalog path.
func (s *Source) Path() string {
	return s.path
}

// Dataset returns the loaded dataset, reading the file if this is the first
// call.
func (s *Source) Dataset() (*Dataset, error) {
	return s.load()
}

func (s *Source) readFile() (*Dataset, error) {
	start := time.Now()
	s.logger.Info("Loading anime catalog", slog.String("path", s.path))

	ds, err := LoadFile(s.path)
	if err != nil {
		s.logger.Error("Failed to load anime catalog", slog.String("path", s.path), slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("Loaded anime catalog",
		slog.String("path", s.path),
		slog.Int("records", ds.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return ds, nil
}
