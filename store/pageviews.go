package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/subforum/models"
)

// RecordPageView bumps the counter for path on the day containing at.
func (s *Store) RecordPageView(ctx context.Context, path string, at time.Time) error {
	day := startOfDay(at)
	// Atomic upsert to avoid duplicate key errors under concurrency
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}, {Name: "path"}},
		DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("count + 1"), "updated_at": at}),
	}).Create(&models.PageView{Day: day, Path: path, Count: 1, UpdatedAt: at}).Error
	if err != nil {
		return fmt.Errorf("record page view %s: %w", path, err)
	}
	return nil
}

// PageViewsOn sums every path's views for the day containing at.
func (s *Store) PageViewsOn(ctx context.Context, at time.Time) (int64, error) {
	day := startOfDay(at)
	var total int64
	err := s.db.WithContext(ctx).Model(&models.PageView{}).
		Where("day >= ? AND day < ?", day, day.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(count),0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum page views: %w", err)
	}
	return total, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
