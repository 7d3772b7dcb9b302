package handlers

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/icco/animedash/handlers/templates"
	"github.com/icco/animedash/lib/aggregate"
	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/lib/db"
	"github.com/icco/animedash/lib/format"
	"github.com/icco/animedash/lib/search"
	"github.com/icco/animedash/lib/types"
	"github.com/icco/animedash/lib/validation"
	"github.com/icco/animedash/models"
	"gorm.io/gorm"
)

// ChartTopN is the number of labels shown in each bar chart.
const ChartTopN = 10

func parseTemplates(files ...string) (*template.Template, error) {
	return templates.ParseTemplates(append([]string{"base.html"}, files...)...)
}

// render executes the "base" template into a buffer and only then writes the
// status and body to w.
func render(w http.ResponseWriter, tmpl *template.Template, status int, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", slog.Any("error", err))
	}
	return nil
}

type errorData struct {
	Tab     string
	Message string
}

func renderError(w http.ResponseWriter, message string, status int) {
	tmpl, err := parseTemplates("error.html")
	if err != nil {
		slog.Error("Failed to parse error template", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := render(w, tmpl, status, errorData{Message: message}); err != nil {
		slog.Error("Failed to execute error template", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

type searchPage struct {
	Tab      string
	Query    search.Query
	Scores   []int
	Searched bool
	Results  []format.Display
}

// HandleSearch renders the search tab. Without a name or score it shows the
// prompt to begin; with one it lists every matching record.
func HandleSearch(ds *catalog.Dataset) http.HandlerFunc {
	scores := make([]int, 0, search.MaxScore+1)
	for s := search.MinScore; s <= search.MaxScore; s++ {
		scores = append(scores, s)
	}

	return func(w http.ResponseWriter, req *http.Request) {
		q := search.ParseQuery(req.URL.Query().Get("name"), req.URL.Query().Get("score"))
		page := searchPage{
			Tab:      "search",
			Query:    q,
			Scores:   scores,
			Searched: q.Active(),
			Results:  format.Records(search.Filter(ds, q)),
		}

		slog.Debug("Search",
			slog.String("name", q.Name),
			slog.Int("score", q.Score),
			slog.Int("results", len(page.Results)))

		tmpl, err := parseTemplates("record.html", "search.html")
		if err != nil {
			slog.Error("Failed to parse template", slog.Any("error", err))
			renderError(w, "Something went wrong while loading the page.", http.StatusInternalServerError)
			return
		}

		if err := render(w, tmpl, http.StatusOK, page); err != nil {
			slog.Error("Failed to execute template", slog.Any("error", err))
			renderError(w, "Something went wrong while displaying the page.", http.StatusInternalServerError)
			return
		}
	}
}

type detailPage struct {
	Tab    string
	Record format.Display
}

// HandleDetail renders a single record addressed by its row position.
func HandleDetail(ds *catalog.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		pos, err := validation.ParsePosition(chi.URLParam(req, "position"))
		if err != nil {
			renderError(w, "Please provide a valid anime number.", http.StatusBadRequest)
			return
		}

		a, ok := ds.At(pos)
		if !ok {
			renderError(w, "We couldn't find that anime.", http.StatusNotFound)
			return
		}

		tmpl, err := parseTemplates("record.html", "detail.html")
		if err != nil {
			slog.Error("Failed to parse template", slog.Any("error", err))
			renderError(w, "Something went wrong while loading the page.", http.StatusInternalServerError)
			return
		}

		if err := render(w, tmpl, http.StatusOK, detailPage{Tab: "search", Record: format.Record(a)}); err != nil {
			slog.Error("Failed to execute template", slog.Any("error", err))
			renderError(w, "Something went wrong while displaying the page.", http.StatusInternalServerError)
			return
		}
	}
}

type chartsPage struct {
	Tab       string
	Stats     *types.StatsData
	Histogram *histogramChart
	Genres    barChart
	Studios   barChart
}

// HandleCharts renders the visualizations tab: catalog statistics, the score
// histogram, and the top genres and studios.
func HandleCharts(agg *aggregate.Aggregator, gormDB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		stats, err := db.Stats(ctx, gormDB)
		if err != nil {
			slog.Error("Failed to get catalog stats", slog.Any("error", err))
			renderError(w, "We couldn't load the catalog statistics.", http.StatusInternalServerError)
			return
		}

		page := chartsPage{
			Tab:       "charts",
			Stats:     stats,
			Histogram: newHistogramChart(agg.Histogram(validation.DefaultBins)),
			Genres:    newBarChart("Genre", agg.TopValues(models.FieldGenres, ChartTopN), viridis),
			Studios:   newBarChart("Studio", agg.TopValues(models.FieldStudios, ChartTopN), magma),
		}

		tmpl, err := parseTemplates("charts.html")
		if err != nil {
			slog.Error("Failed to parse template", slog.Any("error", err))
			renderError(w, "Something went wrong while loading the page.", http.StatusInternalServerError)
			return
		}

		if err := render(w, tmpl, http.StatusOK, page); err != nil {
			slog.Error("Failed to execute template", slog.Any("error", err))
			renderError(w, "Something went wrong while displaying the page.", http.StatusInternalServerError)
			return
		}
	}
}
