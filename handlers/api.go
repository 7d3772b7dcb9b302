package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/icco/animedash/lib/aggregate"
	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/lib/db"
	"github.com/icco/animedash/lib/format"
	"github.com/icco/animedash/lib/search"
	"github.com/icco/animedash/lib/validation"
	"github.com/icco/animedash/models"
	"gorm.io/gorm"
)

// SearchResponse is the JSON body of /api/anime. Searched is false when the
// request carried neither a name nor a score.
type SearchResponse struct {
	Searched bool             `json:"searched"`
	Count    int              `json:"count"`
	Results  []format.Display `json:"results"`
}

// TopResponse is the JSON body of /api/top/{field}.
type TopResponse struct {
	Field  models.Field        `json:"field"`
	N      int                 `json:"n"`
	Values []models.LabelCount `json:"values"`
}

// HistogramResponse is the JSON body of /api/histogram.
type HistogramResponse struct {
	Bins []models.Bin `json:"bins"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}

// HandleAPISearch returns the formatted records matching ?name= or ?score=.
func HandleAPISearch(ds *catalog.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		q := search.ParseQuery(req.URL.Query().Get("name"), req.URL.Query().Get("score"))
		results := format.Records(search.Filter(ds, q))
		writeJSON(w, SearchResponse{
			Searched: q.Active(),
			Count:    len(results),
			Results:  results,
		})
	}
}

// HandleAPIAnime returns one formatted record by row position.
func HandleAPIAnime(ds *catalog.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		pos, err := validation.ParsePosition(chi.URLParam(req, "position"))
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		a, ok := ds.At(pos)
		if !ok {
			validation.WriteError(w, fmt.Errorf("anime %d not found", pos), http.StatusNotFound)
			return
		}
		writeJSON(w, format.Record(a))
	}
}

// HandleAPITop returns the most frequent genres or studios.
func HandleAPITop(agg *aggregate.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		field, ok := models.ParseField(chi.URLParam(req, "field"))
		if !ok {
			validation.WriteError(w, fmt.Errorf("field must be one of %q or %q", models.FieldGenres, models.FieldStudios), http.StatusNotFound)
			return
		}

		n, err := validation.ParseTopN(req.URL.Query().Get("n"))
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		writeJSON(w, TopResponse{Field: field, N: n, Values: agg.TopValues(field, n)})
	}
}

// HandleAPIHistogram returns the score histogram.
func HandleAPIHistogram(agg *aggregate.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		bins, err := validation.ParseBins(req.URL.Query().Get("bins"))
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		writeJSON(w, HistogramResponse{Bins: agg.Histogram(bins)})
	}
}

// HandleAPIStats returns catalog statistics computed by the database.
func HandleAPIStats(gormDB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		stats, err := db.Stats(ctx, gormDB)
		if err != nil {
			slog.Error("Failed to get catalog stats", slog.Any("error", err))
			validation.WriteError(w, errors.New("failed to load statistics"), http.StatusInternalServerError)
			return
		}
		writeJSON(w, stats)
	}
}
