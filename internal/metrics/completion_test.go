package metrics

import (
	"errors"
	"math"
	"testing"
)

func TestIsCompleted(t *testing.T) {
	binary := Habit{ID: "read", Kind: KindBinary}
	minutes := Habit{ID: "run", Kind: KindQuantitative, Target: 30}
	noTarget := Habit{ID: "water", Kind: KindQuantitative}

	tests := []struct {
		name  string
		habit Habit
		value float64
		want  bool
	}{
		{name: "binary done", habit: binary, value: 1, want: true},
		{name: "binary not done", habit: binary, value: 0, want: false},
		{name: "binary above one", habit: binary, value: 2, want: false},
		{name: "binary negative", habit: binary, value: -1, want: false},
		{name: "binary nan", habit: binary, value: math.NaN(), want: false},
		{name: "quantitative at target", habit: minutes, value: 30, want: true},
		{name: "quantitative above target", habit: minutes, value: 45.5, want: true},
		{name: "quantitative below target", habit: minutes, value: 29.9, want: false},
		{name: "quantitative nan", habit: minutes, value: math.NaN(), want: false},
		{name: "zero target accepts zero", habit: noTarget, value: 0, want: true},
		{name: "zero target rejects negative", habit: noTarget, value: -1, want: false},
		{name: "nan target acts as zero", habit: Habit{Kind: KindQuantitative, Target: math.NaN()}, value: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompleted(tt.habit, tt.value); got != tt.want {
				t.Fatalf("IsCompleted(%v) = %v, want %v", tt.value, got, tt.want)
			}
			if again := IsCompleted(tt.habit, tt.value); again != tt.want {
				t.Fatalf("second call returned %v", again)
			}
		})
	}
}

func TestNewHabit(t *testing.T) {
	h, err := NewHabit("h1", KindBinary, 12)
	if err != nil {
		t.Fatalf("NewHabit binary returned error: %v", err)
	}
	if h.Target != 0 {
		t.Fatalf("expected binary target to be cleared, got %v", h.Target)
	}

	if _, err := NewHabit("h2", KindQuantitative, 0); !errors.Is(err, ErrInvalidHabit) {
		t.Fatalf("expected ErrInvalidHabit for zero target, got %v", err)
	}
	if _, err := NewHabit("h3", KindQuantitative, math.Inf(1)); !errors.Is(err, ErrInvalidHabit) {
		t.Fatalf("expected ErrInvalidHabit for infinite target, got %v", err)
	}
	if _, err := NewHabit("", KindBinary, 0); !errors.Is(err, ErrInvalidHabit) {
		t.Fatalf("expected ErrInvalidHabit for empty id, got %v", err)
	}
	if _, err := NewHabit("h4", Kind("weekly"), 0); !errors.Is(err, ErrInvalidHabit) {
		t.Fatalf("expected ErrInvalidHabit for unknown kind, got %v", err)
	}

	q, err := NewHabit("h5", KindQuantitative, 8)
	if err != nil || q.Target != 8 {
		t.Fatalf("unexpected quantitative habit %+v, err=%v", q, err)
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind(" Quantitative "); !ok || k != KindQuantitative {
		t.Fatalf("expected quantitative, got %q ok=%v", k, ok)
	}
	if _, ok := ParseKind("weekly"); ok {
		t.Fatal("expected unknown kind to be rejected")
	}
}
