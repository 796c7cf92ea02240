package metrics

import (
	"sort"
	"time"
)

// DayKeyLayout is the canonical zero-padded day-key format.
const DayKeyLayout = "2006-01-02"

// LogStore maps a day-key to the values logged per habit on that day.
// An absent day or habit is the same as a logged 0.
type LogStore map[string]map[string]float64

// DayKey returns the day-key of t's calendar day in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a canonical day-key. Spellings that do not round-trip
// (for example "2024-1-5") are rejected so key order matches calendar order.
func ParseDayKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.UTC)
	if err != nil || t.Format(DayKeyLayout) != key {
		return time.Time{}, false
	}
	return t, true
}

// Bounds of the day-keys accepted for writing. Streak walks span from the
// earliest to the latest stored key, so stores stay inside this window.
const (
	MinDayKey = "1970-01-01"
	MaxDayKey = "2099-12-31"
)

// InSupportedRange reports whether key is canonical and within
// [MinDayKey, MaxDayKey]. Canonical keys order lexically.
func InSupportedRange(key string) bool {
	if _, ok := ParseDayKey(key); !ok {
		return false
	}
	return key >= MinDayKey && key <= MaxDayKey
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Value is the lookup-with-default accessor every computation goes through.
func (s LogStore) Value(day, habitID string) float64 {
	if s == nil {
		return 0
	}
	return s[day][habitID]
}

// Days returns the canonical day-keys present in the store, ascending.
func (s LogStore) Days() []string {
	days := make([]string, 0, len(s))
	for key := range s {
		if _, ok := ParseDayKey(key); ok {
			days = append(days, key)
		}
	}
	sort.Strings(days)
	return days
}

// Bounds returns the first and last canonical day-keys in the store.
func (s LogStore) Bounds() (first, last string, ok bool) {
	days := s.Days()
	if len(days) == 0 {
		return "", "", false
	}
	return days[0], days[len(days)-1], true
}

// Set records value for habitID on day, creating the day entry when needed.
func (s LogStore) Set(day, habitID string, value float64) {
	entry, ok := s[day]
	if !ok {
		entry = make(map[string]float64)
		s[day] = entry
	}
	entry[habitID] = value
}

// Clone returns a deep copy so callers can hand out an immutable snapshot.
func (s LogStore) Clone() LogStore {
	clone := make(LogStore, len(s))
	for day, entries := range s {
		copied := make(map[string]float64, len(entries))
		for id, v := range entries {
			copied[id] = v
		}
		clone[day] = copied
	}
	return clone
}

// eachDay calls fn for every calendar day in [start, end], inclusive.
// It steps by calendar date so DST transitions never skip or repeat a day.
func eachDay(start, end time.Time, fn func(day time.Time)) {
	start = StartOfDay(start)
	end = StartOfDay(end)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}
