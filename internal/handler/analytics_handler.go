package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/locale"
	"github.com/habitlog/internal/metrics"
	"github.com/habitlog/internal/service"
)

const (
	maxHeatmapDays = 366
	maxStatsDays   = 366
)

// GetSummary 返回仪表盘卡片：完成率、连胜、最佳星期
// habit_id 为空时汇总所有未归档习惯
func (a *API) GetSummary(c *gin.Context) {
	habitID := strings.TrimSpace(c.Query("habit_id"))
	language := a.requestLanguage(c)

	summary, err := a.analytics.Summary(habitID, c.Query("range"), a.today())
	if err != nil {
		handleHabitError(c, err)
		return
	}

	payload := gin.H{
		"habit_id":       summary.HabitID,
		"range":          summary.Range,
		"start":          formatDay(summary.Start),
		"end":            formatDay(summary.End),
		"rate":           roundRate(summary.Rate),
		"best_streak":    summary.BestStreak,
		"best_day":       summary.BestDay,
		"best_day_label": locale.WeekdayName(language, summary.BestDay),
		"language":       language,
	}
	if habitID != "" {
		payload["completed_days"] = summary.CompletedDays
		payload["total_days"] = summary.TotalDays
		payload["current_streak"] = summary.CurrentStreak
	}

	c.JSON(http.StatusOK, payload)
}

// GetSeries 返回柱状图数据
func (a *API) GetSeries(c *gin.Context) {
	habitID := strings.TrimSpace(c.Query("habit_id"))
	language := a.requestLanguage(c)

	result, err := a.analytics.Series(habitID, c.Query("range"), a.today())
	if err != nil {
		handleHabitError(c, err)
		return
	}

	payload := gin.H{
		"habit_id": result.HabitID,
		"range":    result.Range,
		"start":    formatDay(result.Start),
		"end":      formatDay(result.End),
	}

	if result.Habit != nil {
		points := make([]gin.H, 0, len(result.Habit.Points))
		for _, p := range result.Habit.Points {
			points = append(points, gin.H{
				"date":  p.Date,
				"label": seriesLabel(language, result.Range, p.Date),
				"value": p.Value,
			})
		}
		payload["points"] = points
		payload["average"] = roundRate(result.Habit.Average)
	}

	if result.Categories != nil {
		points := make([]gin.H, 0, len(result.Categories.Points))
		for _, p := range result.Categories.Points {
			points = append(points, gin.H{
				"date":   p.Date,
				"label":  seriesLabel(language, result.Range, p.Date),
				"counts": p.Counts,
				"total":  p.Total,
			})
		}
		legend := make([]gin.H, 0, len(result.Legend))
		for _, view := range result.Legend {
			item := categoryViewToPayload(view)
			if view.Missing {
				item["id"] = metrics.UncategorizedID
			}
			legend = append(legend, item)
		}
		payload["points"] = points
		payload["average"] = roundRate(result.Categories.Average)
		payload["legend"] = legend
	}

	c.JSON(http.StatusOK, payload)
}

// GetHabitStats 返回单个习惯在 [start, end] 内的完成统计，默认最近 30 天
func (a *API) GetHabitStats(c *gin.Context) {
	habitID := strings.TrimSpace(c.Param("id"))
	today := a.today()
	defaultStart, defaultEnd := metrics.Window(today, 30)

	start, ok := parseDateQuery(c, "start", defaultStart)
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的开始日期")
		return
	}
	end, ok := parseDateQuery(c, "end", defaultEnd)
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的结束日期")
		return
	}
	if !end.Before(start) && end.After(start.AddDate(0, 0, maxStatsDays-1)) {
		respondError(c, http.StatusBadRequest, "日期区间过大")
		return
	}

	stats, err := a.analytics.HabitStats(habitID, start, end, today)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habit_id":       habitID,
		"start":          formatDay(stats.Start),
		"end":            formatDay(stats.End),
		"total_days":     stats.TotalDays,
		"completed_days": stats.CompletedDays,
		"missed_days":    stats.MissedDays,
		"rate":           roundRate(stats.Rate),
		"current_streak": stats.CurrentStreak,
		"best_streak":    stats.BestStreak,
	})
}

// GetHabitHeatmap 返回单个习惯的热力图 JSON
func (a *API) GetHabitHeatmap(c *gin.Context) {
	result, ok := a.loadHeatmap(c)
	if !ok {
		return
	}

	weeks := make([][]gin.H, 0, len(result.Weeks))
	for _, week := range result.Weeks {
		cells := make([]gin.H, 0, len(week))
		for _, cell := range week {
			cells = append(cells, gin.H{
				"date":      cell.Date,
				"value":     cell.Value,
				"intensity": cell.Intensity,
				"future":    cell.Future,
			})
		}
		weeks = append(weeks, cells)
	}

	c.JSON(http.StatusOK, gin.H{
		"habit":    habitToPayload(result.Habit, result.Category),
		"start":    result.Start,
		"end":      result.End,
		"weeks":    weeks,
		"color":    result.Category.Color,
		"language": a.requestLanguage(c),
	})
}

func (a *API) loadHeatmap(c *gin.Context) (*service.HeatmapResult, bool) {
	habitID := strings.TrimSpace(c.Param("id"))

	days := a.heatmapDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 || val > maxHeatmapDays {
			respondError(c, http.StatusBadRequest, "无效的天数")
			return nil, false
		}
		days = val
	}

	result, err := a.analytics.Heatmap(habitID, a.today(), days)
	if err != nil {
		handleHabitError(c, err)
		return nil, false
	}
	return result, true
}

// seriesLabel 周视图显示星期缩写，月视图显示日期
func seriesLabel(language, rangeName, day string) string {
	t, ok := metrics.ParseDayKey(day)
	if !ok {
		return day
	}
	if rangeName == service.RangeWeek {
		return locale.ShortWeekday(language, t.Weekday())
	}
	return t.Format("2")
}

func roundRate(rate float64) float64 {
	return math.Round(rate*100) / 100
}
