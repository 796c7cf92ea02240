package metrics

import (
	"math"
	"time"
)

// UncategorizedID is the bucket for habits whose category is unknown.
const UncategorizedID = ""

// Point is one day of a single-habit chart series.
type Point struct {
	Date  string
	Value float64
}

// Series is a per-day chart series plus the mean of its values.
type Series struct {
	Points  []Point
	Average float64
}

// CategoryPoint counts completed habits per category for one day.
type CategoryPoint struct {
	Date   string
	Counts map[string]int
	Total  int
}

// CategorySeries is the all-habits chart series.
type CategorySeries struct {
	Points  []CategoryPoint
	Average float64
}

// HeatCell is one square of a heatmap grid.
type HeatCell struct {
	Date      string
	Value     float64
	Intensity float64
	Future    bool
}

// Heatmap is a Sunday-aligned grid of weeks, oldest first.
type Heatmap struct {
	Start string
	End   string
	Weeks [][]HeatCell
}

// Window returns the closed interval of the last days days ending on today.
func Window(today time.Time, days int) (time.Time, time.Time) {
	end := StartOfDay(today)
	if days < 1 {
		days = 1
	}
	return end.AddDate(0, 0, -(days - 1)), end
}

// ProgressPercent is how far value gets towards completion, 0..100.
// Quantitative habits without a usable target are measured against 1.
func ProgressPercent(habit Habit, value float64) float64 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	if habit.Kind == KindBinary {
		if value == 1 {
			return 100
		}
		return 0
	}
	target := habit.Target
	if math.IsNaN(target) || target <= 0 {
		target = 1
	}
	return math.Min(100, value/target*100)
}

// DailySeries returns the rounded progress percentage of habit for each day in [start, end].
func DailySeries(habit Habit, store LogStore, start, end time.Time) Series {
	var series Series
	var sum float64
	eachDay(start, end, func(day time.Time) {
		key := DayKey(day)
		v := math.Round(ProgressPercent(habit, store.Value(key, habit.ID)))
		series.Points = append(series.Points, Point{Date: key, Value: v})
		sum += v
	})
	if n := len(series.Points); n > 0 {
		series.Average = sum / float64(n)
	}
	return series
}

// CategoryDailySeries counts, per day and per category, the completed
// non-archived habits. Habits pointing at a category outside knownCategories
// are counted under UncategorizedID.
func CategoryDailySeries(habits []Habit, knownCategories []string, store LogStore, start, end time.Time) CategorySeries {
	known := make(map[string]struct{}, len(knownCategories))
	for _, id := range knownCategories {
		known[id] = struct{}{}
	}
	active := Active(habits)

	var series CategorySeries
	var sum int
	eachDay(start, end, func(day time.Time) {
		key := DayKey(day)
		point := CategoryPoint{Date: key, Counts: make(map[string]int)}
		for _, h := range active {
			if !IsCompleted(h, store.Value(key, h.ID)) {
				continue
			}
			bucket := h.CategoryID
			if _, ok := known[bucket]; !ok {
				bucket = UncategorizedID
			}
			point.Counts[bucket]++
			point.Total++
		}
		sum += point.Total
		series.Points = append(series.Points, point)
	})
	if n := len(series.Points); n > 0 {
		series.Average = float64(sum) / float64(n)
	}
	return series
}

// Intensity is the heatmap shade for value: 1 when completed, a partial
// shade up to 0.5 for quantitative progress, otherwise 0.
func Intensity(habit Habit, value float64) float64 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	if habit.Kind == KindBinary {
		if value == 1 {
			return 1
		}
		return 0
	}
	if math.IsNaN(habit.Target) || habit.Target <= 0 {
		return 0
	}
	if value >= habit.Target {
		return 1
	}
	return value / habit.Target * 0.5
}

// BuildHeatmap lays out daysBack days before today plus today on a grid whose
// columns run Sunday to Saturday. Padding days after today are marked Future.
func BuildHeatmap(habit Habit, store LogStore, today time.Time, daysBack int) Heatmap {
	if daysBack < 0 {
		daysBack = 0
	}
	end := StartOfDay(today)
	start := end.AddDate(0, 0, -daysBack)
	gridStart := start.AddDate(0, 0, -int(start.Weekday()))
	gridEnd := end.AddDate(0, 0, int(time.Saturday-end.Weekday()))

	heatmap := Heatmap{Start: DayKey(gridStart), End: DayKey(gridEnd)}
	var week []HeatCell
	eachDay(gridStart, gridEnd, func(day time.Time) {
		key := DayKey(day)
		value := store.Value(key, habit.ID)
		week = append(week, HeatCell{
			Date:      key,
			Value:     value,
			Intensity: Intensity(habit, value),
			Future:    day.After(end),
		})
		if day.Weekday() == time.Saturday {
			heatmap.Weeks = append(heatmap.Weeks, week)
			week = nil
		}
	})
	if len(week) > 0 {
		heatmap.Weeks = append(heatmap.Weeks, week)
	}
	return heatmap
}
