package metrics

import (
	"reflect"
	"testing"
	"time"
)

func storeWith(habitID string, value float64, days ...string) LogStore {
	store := LogStore{}
	for _, d := range days {
		store.Set(d, habitID, value)
	}
	return store
}

func mustDay(t *testing.T, key string) time.Time {
	t.Helper()
	day, ok := ParseDayKey(key)
	if !ok {
		t.Fatalf("bad day key %q", key)
	}
	return day
}

func TestParseDayKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "2024-01-05", want: true},
		{key: "2024-02-29", want: true},
		{key: "2023-02-29", want: false},
		{key: "2024-1-5", want: false},
		{key: "2024-01-05T10:00:00Z", want: false},
		{key: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if _, ok := ParseDayKey(tt.key); ok != tt.want {
				t.Fatalf("ParseDayKey(%q) ok=%v, want %v", tt.key, ok, tt.want)
			}
		})
	}
}

func TestInSupportedRange(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: MinDayKey, want: true},
		{key: MaxDayKey, want: true},
		{key: "2024-03-10", want: true},
		{key: "1969-12-31", want: false},
		{key: "2100-01-01", want: false},
		{key: "0001-01-01", want: false},
		{key: "2024-3-10", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := InSupportedRange(tt.key); got != tt.want {
				t.Fatalf("InSupportedRange(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestLogStoreValueDefaultsToZero(t *testing.T) {
	var empty LogStore
	if v := empty.Value("2024-01-01", "h"); v != 0 {
		t.Fatalf("expected 0 from nil store, got %v", v)
	}

	store := storeWith("h", 1, "2024-01-01")
	if v := store.Value("2024-01-01", "other"); v != 0 {
		t.Fatalf("expected 0 for missing habit, got %v", v)
	}
	if v := store.Value("2024-01-02", "h"); v != 0 {
		t.Fatalf("expected 0 for missing day, got %v", v)
	}
	if v := store.Value("2024-01-01", "h"); v != 1 {
		t.Fatalf("expected 1, got %v", v)
	}
}

func TestLogStoreDaysSkipsMalformedKeys(t *testing.T) {
	store := storeWith("h", 1, "2024-01-10", "2024-1-2", "2024-01-02", "oops")
	got := store.Days()
	want := []string{"2024-01-02", "2024-01-10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Days() = %v, want %v", got, want)
	}

	first, last, ok := store.Bounds()
	if !ok || first != "2024-01-02" || last != "2024-01-10" {
		t.Fatalf("unexpected bounds %q %q %v", first, last, ok)
	}
}

func TestLogStoreClone(t *testing.T) {
	store := storeWith("h", 1, "2024-01-01")
	clone := store.Clone()
	clone.Set("2024-01-01", "h", 0)
	clone.Set("2024-01-02", "h", 1)

	if store.Value("2024-01-01", "h") != 1 || len(store) != 1 {
		t.Fatalf("clone mutation leaked into original: %v", store)
	}
}

func TestDayKeyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	if got := DayKey(instant.In(loc)); got != "2024-03-09" {
		t.Fatalf("expected local day 2024-03-09, got %s", got)
	}
}
