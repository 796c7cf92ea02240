package main

import (
	"strings"
	"testing"
	"time"

	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"github.com/habitlog/internal/service"
)

func TestRenderSummaryForHabit(t *testing.T) {
	summary := &service.Summary{
		HabitID:       "h1",
		Range:         service.RangeWeek,
		Start:         time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		End:           time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		Rate:          57.142857,
		CompletedDays: 4,
		TotalDays:     7,
		CurrentStreak: 2,
		BestStreak:    3,
		BestDay:       "Monday",
	}

	out := renderSummary("Read", summary, "es")
	for _, want := range []string{"Read", "2024-03-04 .. 2024-03-10", "57.14%", "4/7", "Current streak", "lunes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryAggregateOmitsCurrentStreak(t *testing.T) {
	summary := &service.Summary{Range: service.RangeMonth, Rate: 50, BestDay: metrics.NoBestDay}

	out := renderSummary("All active habits", summary, "en")
	if strings.Contains(out, "Current streak") {
		t.Fatalf("aggregate summary should not show current streak:\n%s", out)
	}
	if !strings.Contains(out, "N/A") || !strings.Contains(out, "50.00%") {
		t.Fatalf("unexpected aggregate output:\n%s", out)
	}
}

func TestRenderHabits(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	habits := []db.Habit{
		{ID: "h1", Name: "Read", Kind: "quantitative", Target: 20, Unit: "pages", CategoryID: "cat-3"},
		{ID: "h2", Name: "Floss", Kind: "binary", CategoryID: "deleted", Archived: true},
	}
	store := metrics.LogStore{}
	store.Set("2024-03-09", "h1", 25)
	store.Set("2024-03-10", "h1", 20)

	out := renderHabits(habits, db.DefaultCategories, store, now)
	for _, want := range []string{"Habits (2)", "✓", "20 pages", "Aprendizaje", "streak 2", "Floss (archived)", db.UncategorizedName} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	if empty := renderHabits(nil, nil, nil, now); !strings.Contains(empty, "no habits yet") {
		t.Fatalf("unexpected empty output %q", empty)
	}
}
