package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/icco/animedash/lib/catalog"
	"gorm.io/gorm"
)

// Health represents the health check response structure.
// It includes the overall status, timestamp, catalog and database health.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Catalog   struct {
		Status  string `json:"status"`
		Records int    `json:"records"`
		Message string `json:"message,omitempty"`
	} `json:"catalog"`
	DB struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"db"`
}

// Check returns an HTTP handler that reports whether the catalog is loaded
// and the statistics database answers a ping.
func Check(source *catalog.Source, db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := Health{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		status := http.StatusOK

		ds, err := source.Dataset()
		if err != nil {
			health.Status = "degraded"
			health.Catalog.Status = "error"
			health.Catalog.Message = "Catalog failed to load"
			status = http.StatusServiceUnavailable
		} else {
			health.Catalog.Status = "ok"
			health.Catalog.Records = ds.Len()
		}

		sqlDB, err := db.DB()
		if err != nil {
			health.Status = "degraded"
			health.DB.Status = "error"
			health.DB.Message = "Failed to get database connection"
			writeHealth(w, health, http.StatusServiceUnavailable)
			return
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			health.Status = "degraded"
			health.DB.Status = "error"
			health.DB.Message = "Database ping failed"
			writeHealth(w, health, http.StatusServiceUnavailable)
			return
		}

		health.DB.Status = "ok"
		writeHealth(w, health, status)
	}
}

// writeHealth writes the health check response to the HTTP response writer.
func writeHealth(w http.ResponseWriter, health Health, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("Failed to encode health response", slog.Any("error", err))
	}
}
