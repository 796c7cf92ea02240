package metrics

import "time"

// NoBestDay is returned by BestDayOfWeek when no weekday has any data.
const NoBestDay = "N/A"

// WeekdayStat holds the per-weekday counters behind BestDayOfWeek.
type WeekdayStat struct {
	Weekday   time.Weekday
	Total     int
	Completed int
}

// Rate is completed/total as a fraction; 0 when there is no data.
func (w WeekdayStat) Rate() float64 {
	if w.Total == 0 {
		return 0
	}
	return float64(w.Completed) / float64(w.Total)
}

// WeekdayStats tallies, for every day-key in the store and every non-archived
// habit, how often that weekday was logged and completed. Index 0 is Sunday.
func WeekdayStats(store LogStore, habits []Habit) [7]WeekdayStat {
	var stats [7]WeekdayStat
	for i := range stats {
		stats[i].Weekday = time.Weekday(i)
	}

	active := Active(habits)
	for _, key := range store.Days() {
		date, _ := ParseDayKey(key)
		slot := &stats[date.Weekday()]
		for _, h := range active {
			slot.Total++
			if IsCompleted(h, store.Value(key, h.ID)) {
				slot.Completed++
			}
		}
	}
	return stats
}

// BestDayOfWeek returns the English name of the weekday with the highest
// completion ratio. Ties go to the earliest day in Sunday..Saturday order.
func BestDayOfWeek(store LogStore, habits []Habit) string {
	best := NoBestDay
	bestRate := -1.0
	for _, stat := range WeekdayStats(store, habits) {
		if stat.Total == 0 {
			continue
		}
		if rate := stat.Rate(); rate > bestRate {
			bestRate = rate
			best = stat.Weekday.String()
		}
	}
	return best
}
