package handler

import (
	"time"

	"github.com/habitlog/internal/service"
)

type analyticsProvider interface {
	Summary(habitID, rangeName string, today time.Time) (*service.Summary, error)
	HabitStats(habitID string, start, end, today time.Time) (*service.HabitStats, error)
	Series(habitID, rangeName string, today time.Time) (*service.SeriesResult, error)
	Heatmap(habitID string, today time.Time, daysBack int) (*service.HeatmapResult, error)
}
