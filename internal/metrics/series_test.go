package metrics

import (
	"testing"
	"time"
)

func TestDailySeries(t *testing.T) {
	habit := Habit{ID: "h", Kind: KindQuantitative, Target: 30}
	store := LogStore{}
	store.Set("2024-01-01", "h", 15)
	store.Set("2024-01-02", "h", 45)

	series := DailySeries(habit, store, mustDay(t, "2024-01-01"), mustDay(t, "2024-01-04"))
	if len(series.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(series.Points))
	}
	want := []float64{50, 100, 0, 0}
	for i, p := range series.Points {
		if p.Value != want[i] {
			t.Fatalf("point %d (%s) = %v, want %v", i, p.Date, p.Value, want[i])
		}
	}
	if series.Average != 37.5 {
		t.Fatalf("expected average 37.5, got %v", series.Average)
	}
}

func TestProgressPercent(t *testing.T) {
	binary := Habit{Kind: KindBinary}
	if ProgressPercent(binary, 1) != 100 || ProgressPercent(binary, 2) != 0 {
		t.Fatal("unexpected binary progress")
	}
	noTarget := Habit{Kind: KindQuantitative}
	if got := ProgressPercent(noTarget, 0.5); got != 50 {
		t.Fatalf("expected target to fall back to 1, got %v", got)
	}
	if got := ProgressPercent(noTarget, -3); got != 0 {
		t.Fatalf("expected negative value to clamp to 0, got %v", got)
	}
}

func TestCategoryDailySeries(t *testing.T) {
	habits := []Habit{
		{ID: "a", Kind: KindBinary, CategoryID: "health"},
		{ID: "b", Kind: KindBinary, CategoryID: "deleted"},
		{ID: "c", Kind: KindBinary, CategoryID: "health", Archived: true},
	}
	store := LogStore{}
	store.Set("2024-01-01", "a", 1)
	store.Set("2024-01-01", "b", 1)
	store.Set("2024-01-01", "c", 1)
	store.Set("2024-01-02", "a", 1)

	series := CategoryDailySeries(habits, []string{"health"}, store, mustDay(t, "2024-01-01"), mustDay(t, "2024-01-02"))
	if len(series.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series.Points))
	}
	first := series.Points[0]
	if first.Total != 2 || first.Counts["health"] != 1 || first.Counts[UncategorizedID] != 1 {
		t.Fatalf("unexpected first point %+v", first)
	}
	if series.Average != 1.5 {
		t.Fatalf("expected average 1.5, got %v", series.Average)
	}
}

func TestBuildHeatmap(t *testing.T) {
	habit := Habit{ID: "h", Kind: KindQuantitative, Target: 30}
	store := LogStore{}
	store.Set("2024-03-04", "h", 30)
	store.Set("2024-03-05", "h", 15)
	today := time.Date(2024, 3, 13, 18, 0, 0, 0, time.Local) // Wednesday

	heatmap := BuildHeatmap(habit, store, today, 10)

	if heatmap.Start != "2024-03-03" || heatmap.End != "2024-03-16" {
		t.Fatalf("unexpected grid bounds %s..%s", heatmap.Start, heatmap.End)
	}
	if len(heatmap.Weeks) != 2 || len(heatmap.Weeks[0]) != 7 || len(heatmap.Weeks[1]) != 7 {
		t.Fatalf("expected two full weeks, got %d", len(heatmap.Weeks))
	}
	if heatmap.Weeks[0][0].Date != "2024-03-03" {
		t.Fatalf("expected grid to start on Sunday, got %s", heatmap.Weeks[0][0].Date)
	}
	if cell := heatmap.Weeks[0][1]; cell.Intensity != 1 || cell.Value != 30 {
		t.Fatalf("unexpected completed cell %+v", cell)
	}
	if cell := heatmap.Weeks[0][2]; cell.Intensity != 0.25 {
		t.Fatalf("unexpected partial cell %+v", cell)
	}

	future := 0
	for _, cell := range heatmap.Weeks[1] {
		if cell.Future {
			future++
		}
	}
	if future != 3 {
		t.Fatalf("expected 3 future padding cells, got %d", future)
	}
}

func TestWindow(t *testing.T) {
	today := time.Date(2024, 1, 7, 15, 0, 0, 0, time.UTC)
	start, end := Window(today, 7)
	if DayKey(start) != "2024-01-01" || DayKey(end) != "2024-01-07" {
		t.Fatalf("unexpected window %s..%s", DayKey(start), DayKey(end))
	}
}
