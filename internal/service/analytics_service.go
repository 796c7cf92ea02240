package service

import (
	"strings"
	"time"

	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"gorm.io/gorm"
)

const (
	// RangeWeek 表示包含今天在内的最近 7 天
	RangeWeek = "week"
	// RangeMonth 表示包含今天在内的最近 30 天
	RangeMonth = "month"
)

// AnalyticsService 将数据库快照交给 metrics 计算，每次调用读取独立快照
type AnalyticsService struct {
	habits     *HabitService
	categories *CategoryService
	logs       *HabitLogService
}

// Summary 汇总仪表盘卡片数据；HabitID 为空表示所有未归档习惯
type Summary struct {
	HabitID       string
	Range         string
	Start         time.Time
	End           time.Time
	Rate          float64
	CompletedDays int
	TotalDays     int
	CurrentStreak int
	BestStreak    int
	BestDay       string
}

// HabitStats 单个习惯在指定区间内的统计
type HabitStats struct {
	metrics.Stats
	Start         time.Time
	End           time.Time
	CurrentStreak int
	BestStreak    int
}

// SeriesResult 图表数据：单习惯为百分比序列，全部习惯为按分类堆叠的计数
type SeriesResult struct {
	HabitID    string
	Range      string
	Start      time.Time
	End        time.Time
	Habit      *metrics.Series
	Categories *metrics.CategorySeries
	Legend     []CategoryView
}

// HeatmapResult 单个习惯的热力图
type HeatmapResult struct {
	Habit    db.Habit
	Category CategoryView
	metrics.Heatmap
}

// NewAnalyticsService 构造 AnalyticsService
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		habits:     NewHabitService(gdb),
		categories: NewCategoryService(gdb),
		logs:       NewHabitLogService(gdb),
	}
}

// NormalizeRange 返回规范的区间名称与天数，未知值回退为 week
func NormalizeRange(raw string) (string, int) {
	if strings.EqualFold(strings.TrimSpace(raw), RangeMonth) {
		return RangeMonth, 30
	}
	return RangeWeek, 7
}

// Summary 计算完成率、连胜与最佳星期
func (s *AnalyticsService) Summary(habitID, rangeName string, today time.Time) (*Summary, error) {
	name, days := NormalizeRange(rangeName)
	start, end := metrics.Window(today, days)

	store, err := s.logs.Snapshot()
	if err != nil {
		return nil, err
	}

	summary := &Summary{HabitID: habitID, Range: name, Start: start, End: end}

	if habitID != "" {
		habit, err := s.habits.Get(habitID)
		if err != nil {
			return nil, err
		}
		def := habit.Definition()
		stats := metrics.CompletionStats(def, store, start, end)
		summary.Rate = stats.Rate
		summary.CompletedDays = stats.CompletedDays
		summary.TotalDays = stats.TotalDays
		summary.CurrentStreak = metrics.CurrentStreak(def, store, today)
		summary.BestStreak = metrics.BestStreak(def, store)
		summary.BestDay = metrics.BestDayOfWeek(store, []metrics.Habit{def})
		return summary, nil
	}

	defs, err := s.habits.Definitions()
	if err != nil {
		return nil, err
	}
	summary.Rate = metrics.AggregateRate(defs, store, start, end)
	summary.BestStreak = metrics.BestStreakAcross(defs, store)
	summary.BestDay = metrics.BestDayOfWeek(store, defs)
	return summary, nil
}

// HabitStats 计算单个习惯在 [start, end] 内的完成情况，today 用于当前连胜
func (s *AnalyticsService) HabitStats(habitID string, start, end, today time.Time) (*HabitStats, error) {
	habit, err := s.habits.Get(habitID)
	if err != nil {
		return nil, err
	}
	store, err := s.logs.Snapshot()
	if err != nil {
		return nil, err
	}

	def := habit.Definition()
	return &HabitStats{
		Stats:         metrics.CompletionStats(def, store, start, end),
		Start:         metrics.StartOfDay(start),
		End:           metrics.StartOfDay(end),
		CurrentStreak: metrics.CurrentStreak(def, store, today),
		BestStreak:    metrics.BestStreak(def, store),
	}, nil
}

// Series 生成柱状图数据
func (s *AnalyticsService) Series(habitID, rangeName string, today time.Time) (*SeriesResult, error) {
	name, days := NormalizeRange(rangeName)
	start, end := metrics.Window(today, days)

	store, err := s.logs.Snapshot()
	if err != nil {
		return nil, err
	}

	result := &SeriesResult{HabitID: habitID, Range: name, Start: start, End: end}

	if habitID != "" {
		habit, err := s.habits.Get(habitID)
		if err != nil {
			return nil, err
		}
		series := metrics.DailySeries(habit.Definition(), store, start, end)
		result.Habit = &series
		return result, nil
	}

	defs, err := s.habits.Definitions()
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List()
	if err != nil {
		return nil, err
	}

	series := metrics.CategoryDailySeries(defs, categoryIDs(categories), store, start, end)
	result.Categories = &series
	result.Legend = legendFor(metrics.Active(defs), categories)
	return result, nil
}

// Heatmap 生成单个习惯最近 daysBack 天的热力图
func (s *AnalyticsService) Heatmap(habitID string, today time.Time, daysBack int) (*HeatmapResult, error) {
	habit, err := s.habits.Get(habitID)
	if err != nil {
		return nil, err
	}
	store, err := s.logs.Snapshot()
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List()
	if err != nil {
		return nil, err
	}

	return &HeatmapResult{
		Habit:    *habit,
		Category: ResolveCategory(categories, habit.CategoryID),
		Heatmap:  metrics.BuildHeatmap(habit.Definition(), store, today, daysBack),
	}, nil
}

// legendFor 返回活跃习惯实际用到的分类，悬空引用合并为一个未分类条目
func legendFor(active []metrics.Habit, categories []db.Category) []CategoryView {
	used := make(map[string]struct{}, len(active))
	for _, h := range active {
		used[h.CategoryID] = struct{}{}
	}

	legend := make([]CategoryView, 0, len(used))
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
		if _, ok := used[c.ID]; ok {
			legend = append(legend, ResolveCategory(categories, c.ID))
		}
	}
	for id := range used {
		if _, ok := known[id]; !ok {
			uncategorized := ResolveCategory(nil, metrics.UncategorizedID)
			legend = append(legend, uncategorized)
			break
		}
	}
	return legend
}
