package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/icco/animedash/lib/aggregate"
	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/lib/health"
	"gorm.io/gorm"
)

// NewRouter wires the dashboard pages, the JSON API and the health check.
// It fails if the catalog cannot be loaded.
func NewRouter(source *catalog.Source, gormDB *gorm.DB) (http.Handler, error) {
	ds, err := source.Dataset()
	if err != nil {
		return nil, err
	}
	agg := aggregate.New(ds)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", HandleSearch(ds))
	r.Get("/anime/{position}", HandleDetail(ds))
	r.Get("/charts", HandleCharts(agg, gormDB))
	r.Get("/health", health.Check(source, gormDB))

	r.Route("/api", func(r chi.Router) {
		r.Get("/anime", HandleAPISearch(ds))
		r.Get("/anime/{position}", HandleAPIAnime(ds))
		r.Get("/top/{field}", HandleAPITop(agg))
		r.Get("/histogram", HandleAPIHistogram(agg))
		r.Get("/stats", HandleAPIStats(gormDB))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		renderError(w, "That page doesn't exist.", http.StatusNotFound)
	})

	return r, nil
}
