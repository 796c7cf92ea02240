package metrics

import "math"

// IsCompleted reports whether value satisfies habit's success condition.
// A missing or non-positive quantitative target is a threshold of 0.
func IsCompleted(habit Habit, value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	if habit.Kind == KindBinary {
		return value == 1
	}
	return value >= threshold(habit)
}

func threshold(habit Habit) float64 {
	if math.IsNaN(habit.Target) || habit.Target <= 0 {
		return 0
	}
	return habit.Target
}
