package db

import (
	"context"
	"fmt"

	"github.com/icco/animedash/lib/types"
	"github.com/icco/animedash/models"
	"gorm.io/gorm"
)

// Stats computes catalog statistics from the mirrored anime table.
func Stats(ctx context.Context, db *gorm.DB) (*types.StatsData, error) {
	var stats types.StatsData
	q := db.WithContext(ctx).Model(&models.Anime{})

	if err := q.Count(&stats.TotalAnime).Error; err != nil {
		return nil, fmt.Errorf("failed to count anime: %w", err)
	}

	var scores struct {
		Scored int64
		Avg    *float64
		Min    *float64
		Max    *float64
	}
	if err := db.WithContext(ctx).Model(&models.Anime{}).
		Select("COUNT(score) AS scored, AVG(score) AS avg, MIN(score) AS min, MAX(score) AS max").
		Scan(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}
	stats.ScoredAnime = scores.Scored
	if scores.Avg != nil {
		stats.AverageScore = *scores.Avg
	}
	if scores.Min != nil {
		stats.MinScore = *scores.Min
	}
	if scores.Max != nil {
		stats.MaxScore = *scores.Max
	}

	if err := db.WithContext(ctx).Model(&models.Anime{}).
		Where("completed > 0").
		Count(&stats.FinishedAiring).Error; err != nil {
		return nil, fmt.Errorf("failed to count finished anime: %w", err)
	}
	stats.Ongoing = stats.TotalAnime - stats.FinishedAiring

	if err := db.WithContext(ctx).Model(&models.Anime{}).
		Select("COALESCE(SUM(members), 0)").
		Scan(&stats.TotalMembers).Error; err != nil {
		return nil, fmt.Errorf("failed to sum members: %w", err)
	}

	stats.TypeDistribution = []types.TypeCount{}
	if err := db.WithContext(ctx).Model(&models.Anime{}).
		Select("COALESCE(type, 'N/A') AS type, COUNT(*) AS count").
		Group("COALESCE(type, 'N/A')").
		Order("count DESC, type ASC").
		Scan(&stats.TypeDistribution).Error; err != nil {
		return nil, fmt.Errorf("failed to get type distribution: %w", err)
	}

	return &stats, nil
}
