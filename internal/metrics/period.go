package metrics

import "time"

// Stats summarizes one habit over a closed date interval.
type Stats struct {
	TotalDays     int
	CompletedDays int
	MissedDays    int
	Rate          float64
}

// CompletionStats walks every calendar day in [start, end]. Rate is a percentage
// and is 0 for an empty interval.
func CompletionStats(habit Habit, store LogStore, start, end time.Time) Stats {
	var stats Stats
	eachDay(start, end, func(day time.Time) {
		stats.TotalDays++
		if completedOn(habit, store, day) {
			stats.CompletedDays++
		}
	})
	stats.MissedDays = stats.TotalDays - stats.CompletedDays
	stats.Rate = percent(stats.CompletedDays, stats.TotalDays)
	return stats
}

// AggregateRate is the mean of the per-habit rates of the non-archived habits.
// Every habit weighs the same regardless of its history; no habits yields 0.
func AggregateRate(habits []Habit, store LogStore, start, end time.Time) float64 {
	active := Active(habits)
	if len(active) == 0 {
		return 0
	}
	var sum float64
	for _, h := range active {
		sum += CompletionStats(h, store, start, end).Rate
	}
	return sum / float64(len(active))
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
