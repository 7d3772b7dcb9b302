package main

import (
	"log/slog"

	"github.com/icco/animedash/lib/aggregate"
	"github.com/icco/animedash/lib/db"
	"github.com/icco/animedash/models"
	"github.com/spf13/cobra"
)

var inspectTop int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the catalog and log an overview of its contents",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectTop, "top", 10, "Number of genres and studios to list")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, ds, gormDB, err := openCatalog(ctx)
	if err != nil {
		return err
	}

	logger.Info("=== CATALOG OVERVIEW ===")
	stats, err := db.Stats(ctx, gormDB)
	if err != nil {
		return err
	}
	logger.Info("Catalog statistics",
		slog.Int64("total", stats.TotalAnime),
		slog.Int64("scored", stats.ScoredAnime),
		slog.Float64("average_score", stats.AverageScore),
		slog.Float64("min_score", stats.MinScore),
		slog.Float64("max_score", stats.MaxScore),
		slog.Int64("finished_airing", stats.FinishedAiring),
		slog.Int64("ongoing", stats.Ongoing),
		slog.Int64("total_members", stats.TotalMembers))

	for _, tc := range stats.TypeDistribution {
		logger.Info("Type", slog.String("type", tc.Type), slog.Int64("count", tc.Count))
	}

	logger.Info("=== TOP GENRES ===")
	for i, lc := range aggregate.TopValues(ds, models.FieldGenres, inspectTop) {
		logger.Info("Genre", slog.Int("rank", i+1), slog.String("genre", lc.Label), slog.Int("count", lc.Count))
	}

	logger.Info("=== TOP STUDIOS ===")
	for i, lc := range aggregate.TopValues(ds, models.FieldStudios, inspectTop) {
		logger.Info("Studio", slog.Int("rank", i+1), slog.String("studio", lc.Label), slog.Int("count", lc.Count))
	}

	logger.Info("=== DATA VALIDATION ===")
	var unnamed, unscored int
	for _, a := range ds.All() {
		if a.Name == "" {
			unnamed++
		}
		if a.Score == nil {
			unscored++
		}
	}
	logger.Info("Records without a name", slog.Int("count", unnamed))
	logger.Info("Records without a score", slog.Int("count", unscored))

	logger.Info("Inspection completed")
	return nil
}
