package metrics

import "time"

// CurrentStreak counts consecutive completed days ending on referenceDate, or on
// the day before when referenceDate itself is not completed yet. The walk stops at
// the first incomplete day and never goes before the earliest day in the store.
func CurrentStreak(habit Habit, store LogStore, referenceDate time.Time) int {
	day := StartOfDay(referenceDate)
	if !completedOn(habit, store, day) {
		day = day.AddDate(0, 0, -1)
		if !completedOn(habit, store, day) {
			return 0
		}
	}

	first, _, hasHistory := store.Bounds()
	streak := 0
	for completedOn(habit, store, day) {
		streak++
		prev := day.AddDate(0, 0, -1)
		if !hasHistory || DayKey(prev) < first {
			break
		}
		day = prev
	}
	return streak
}

// BestStreak returns the longest run of completed days in the store's history.
// Every calendar day between the first and last day-key is visited, so a day
// nobody logged anything on still breaks the run.
func BestStreak(habit Habit, store LogStore) int {
	first, last, ok := store.Bounds()
	if !ok {
		return 0
	}
	start, _ := ParseDayKey(first)
	end, _ := ParseDayKey(last)

	best, run := 0, 0
	eachDay(start, end, func(day time.Time) {
		if !completedOn(habit, store, day) {
			run = 0
			return
		}
		run++
		if run > best {
			best = run
		}
	})
	return best
}

// BestStreakAcross returns the largest BestStreak among non-archived habits.
func BestStreakAcross(habits []Habit, store LogStore) int {
	best := 0
	for _, h := range Active(habits) {
		if s := BestStreak(h, store); s > best {
			best = s
		}
	}
	return best
}

func completedOn(habit Habit, store LogStore, day time.Time) bool {
	return IsCompleted(habit, store.Value(DayKey(day), habit.ID))
}
