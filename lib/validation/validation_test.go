package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopN(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", DefaultTopN, false},
		{"1", 1, false},
		{"100", 100, false},
		{"0", 0, true},
		{"101", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTopN(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBins(t *testing.T) {
	got, err := ParseBins("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBins, got)

	_, err = ParseBins("1000")
	assert.EqualError(t, err, "bins must be between 1 and 100")
}

func TestParsePosition(t *testing.T) {
	pos, err := ParsePosition("12")
	require.NoError(t, err)
	assert.Equal(t, 12, pos)

	_, err = ParsePosition("-1")
	assert.Error(t, err)

	_, err = ParsePosition("abc")
	assert.Error(t, err)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("bad input"), http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "bad input", body["error"])
}
