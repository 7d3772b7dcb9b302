package validation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	DefaultTopN = 10
	MaxTopN     = 100
	DefaultBins = 20
	MaxBins     = 100
)

// ParseTopN parses the "n" parameter of a top-values request. An empty value
// yields DefaultTopN.
func ParseTopN(raw string) (int, error) {
	return parseBounded("n", raw, DefaultTopN, MaxTopN)
}

// ParseBins parses the "bins" parameter of a histogram request. An empty
// value yields DefaultBins.
func ParseBins(raw string) (int, error) {
	return parseBounded("bins", raw, DefaultBins, MaxBins)
}

// ParsePosition parses a record's row position from a URL segment.
func ParsePosition(raw string) (int, error) {
	pos, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid position: %q", raw)
	}
	if pos < 0 {
		return 0, fmt.Errorf("position must not be negative")
	}
	return pos, nil
}

func parseBounded(name, raw string, def, upper int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < 1 || v > upper {
		return 0, fmt.Errorf("%s must be between 1 and %d", name, upper)
	}
	return v, nil
}

// WriteError writes a validation error response to the HTTP response writer.
// It takes a response writer, error message, and HTTP status code.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		slog.Error("Failed to encode error response", slog.Any("error", err))
	}
}
