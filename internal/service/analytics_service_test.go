package service

import (
	"errors"
	"math"
	"testing"
	"time"
)

type analyticsFixture struct {
	svc   *AnalyticsService
	read  string
	run   string
	old   string
	today time.Time
}

// 2024-03-10 is a Sunday.
func setupAnalyticsFixture(t *testing.T) analyticsFixture {
	t.Helper()
	gdb := setupServiceTestDB(t)
	habits := NewHabitService(gdb)
	logs := NewHabitLogService(gdb)

	read := mustCreateHabit(t, habits, HabitInput{Name: "Read", Kind: "binary", CategoryID: "cat-3"})
	run := mustCreateHabit(t, habits, HabitInput{Name: "Run", Kind: "quantitative", Target: 30, CategoryID: "gone"})
	old := mustCreateHabit(t, habits, HabitInput{Name: "Old", Kind: "binary", CategoryID: "cat-3"})
	if _, err := habits.SetArchived(old.ID, true); err != nil {
		t.Fatalf("SetArchived returned error: %v", err)
	}

	for _, day := range []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-08", "2024-03-09", "2024-03-10"} {
		toggle(t, logs, day, read.ID)
	}
	for _, day := range []string{"2024-02-01", "2024-02-02", "2024-02-03", "2024-02-04", "2024-02-05"} {
		toggle(t, logs, day, old.ID)
	}
	if err := logs.SetQuantitative("2024-03-09", run.ID, 45); err != nil {
		t.Fatalf("SetQuantitative returned error: %v", err)
	}
	if err := logs.SetQuantitative("2024-03-10", run.ID, 15); err != nil {
		t.Fatalf("SetQuantitative returned error: %v", err)
	}

	return analyticsFixture{
		svc:   NewAnalyticsService(gdb),
		read:  read.ID,
		run:   run.ID,
		old:   old.ID,
		today: time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local),
	}
}

func toggle(t *testing.T, logs *HabitLogService, day, habitID string) {
	t.Helper()
	if _, err := logs.ToggleBinary(day, habitID); err != nil {
		t.Fatalf("ToggleBinary(%s) returned error: %v", day, err)
	}
}

func TestAnalyticsSummarySingleHabit(t *testing.T) {
	f := setupAnalyticsFixture(t)

	summary, err := f.svc.Summary(f.read, "week", f.today)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if summary.TotalDays != 7 || summary.CompletedDays != 6 {
		t.Fatalf("unexpected day counts %+v", summary)
	}
	if math.Abs(summary.Rate-85.714) > 0.01 {
		t.Fatalf("expected rate ≈85.71, got %v", summary.Rate)
	}
	if summary.CurrentStreak != 3 || summary.BestStreak != 3 {
		t.Fatalf("unexpected streaks current=%d best=%d", summary.CurrentStreak, summary.BestStreak)
	}
	if summary.Range != RangeWeek {
		t.Fatalf("unexpected range %s", summary.Range)
	}
}

func TestAnalyticsSummaryAllHabits(t *testing.T) {
	f := setupAnalyticsFixture(t)

	summary, err := f.svc.Summary("", "month", f.today)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	// read: 6/30 = 20%, run: 1/30 ≈ 3.33%; the archived habit is ignored.
	want := (20.0 + 100.0/30.0) / 2
	if math.Abs(summary.Rate-want) > 0.001 {
		t.Fatalf("expected aggregate rate %v, got %v", want, summary.Rate)
	}
	if summary.BestStreak != 3 {
		t.Fatalf("expected archived habit's 5-day streak to be ignored, got %d", summary.BestStreak)
	}
	if summary.CurrentStreak != 0 {
		t.Fatalf("expected no current streak for aggregate view, got %d", summary.CurrentStreak)
	}
	if summary.Range != RangeMonth || summary.End.Sub(summary.Start) < 29*24*time.Hour-time.Hour {
		t.Fatalf("unexpected month window %v..%v", summary.Start, summary.End)
	}
	if summary.BestDay == "" {
		t.Fatal("expected a best day")
	}
}

func TestAnalyticsSummaryUnknownHabit(t *testing.T) {
	f := setupAnalyticsFixture(t)
	if _, err := f.svc.Summary("missing", "week", f.today); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestAnalyticsHabitStats(t *testing.T) {
	f := setupAnalyticsFixture(t)
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)

	stats, err := f.svc.HabitStats(f.run, start, end, f.today)
	if err != nil {
		t.Fatalf("HabitStats returned error: %v", err)
	}
	if stats.TotalDays != 7 || stats.CompletedDays != 1 || stats.MissedDays != 6 {
		t.Fatalf("unexpected stats %+v", stats.Stats)
	}
	if stats.CurrentStreak != 1 || stats.BestStreak != 1 {
		t.Fatalf("unexpected streaks current=%d best=%d", stats.CurrentStreak, stats.BestStreak)
	}
}

func TestAnalyticsSeries(t *testing.T) {
	f := setupAnalyticsFixture(t)

	single, err := f.svc.Series(f.run, "week", f.today)
	if err != nil {
		t.Fatalf("Series returned error: %v", err)
	}
	points := single.Habit.Points
	if len(points) != 7 || points[5].Value != 100 || points[6].Value != 50 {
		t.Fatalf("unexpected single series %+v", points)
	}

	all, err := f.svc.Series("", "week", f.today)
	if err != nil {
		t.Fatalf("Series returned error: %v", err)
	}
	last := all.Categories.Points[6]
	if last.Total != 1 || last.Counts["cat-3"] != 1 {
		t.Fatalf("unexpected last day counts %+v", last)
	}
	saturday := all.Categories.Points[5]
	if saturday.Total != 2 || saturday.Counts[""] != 1 {
		t.Fatalf("expected dangling category to count as uncategorized, got %+v", saturday)
	}
	if len(all.Legend) != 2 {
		t.Fatalf("expected legend with one category plus uncategorized, got %+v", all.Legend)
	}
}

func TestAnalyticsHeatmap(t *testing.T) {
	f := setupAnalyticsFixture(t)

	heatmap, err := f.svc.Heatmap(f.run, f.today, 14)
	if err != nil {
		t.Fatalf("Heatmap returned error: %v", err)
	}
	if !heatmap.Category.Missing {
		t.Fatalf("expected dangling category to resolve to fallback, got %+v", heatmap.Category)
	}
	if heatmap.Start != "2024-02-25" || heatmap.End != "2024-03-16" {
		t.Fatalf("unexpected heatmap bounds %s..%s", heatmap.Start, heatmap.End)
	}
	if len(heatmap.Weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(heatmap.Weeks))
	}
}

func TestAnalyticsReadsFreshSnapshot(t *testing.T) {
	gdb := setupServiceTestDB(t)
	habits := NewHabitService(gdb)
	logs := NewHabitLogService(gdb)
	svc := NewAnalyticsService(gdb)
	habit := mustCreateHabit(t, habits, HabitInput{Name: "Floss", Kind: "binary"})
	today := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)

	first, _ := svc.Summary(habit.ID, "week", today)
	again, _ := svc.Summary(habit.ID, "week", today)
	if *first != *again {
		t.Fatalf("expected identical results for unchanged data: %+v vs %+v", first, again)
	}

	toggle(t, logs, "2024-01-02", habit.ID)
	after, _ := svc.Summary(habit.ID, "week", today)
	if after.CurrentStreak != 1 {
		t.Fatalf("expected recomputation after mutation, got %+v", after)
	}
}
