package metrics

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind distinguishes binary habits from quantitative ones.
type Kind string

const (
	KindBinary       Kind = "binary"
	KindQuantitative Kind = "quantitative"
)

// ErrInvalidHabit is returned by NewHabit for definitions the core cannot evaluate.
var ErrInvalidHabit = errors.New("invalid habit definition")

// Habit is the read-only view of a habit definition used by every computation.
// Target is only meaningful for KindQuantitative.
type Habit struct {
	ID         string
	Kind       Kind
	Target     float64
	CategoryID string
	Archived   bool
}

// ParseKind normalizes user input to a Kind. Unknown values report false.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindBinary:
		return KindBinary, true
	case KindQuantitative:
		return KindQuantitative, true
	default:
		return "", false
	}
}

// NewHabit builds a Habit, requiring a positive finite target for quantitative habits.
// Binary habits never carry a target.
func NewHabit(id string, kind Kind, target float64) (Habit, error) {
	if strings.TrimSpace(id) == "" {
		return Habit{}, fmt.Errorf("%w: id is required", ErrInvalidHabit)
	}
	switch kind {
	case KindBinary:
		return Habit{ID: id, Kind: KindBinary}, nil
	case KindQuantitative:
		if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
			return Habit{}, fmt.Errorf("%w: quantitative target must be positive", ErrInvalidHabit)
		}
		return Habit{ID: id, Kind: KindQuantitative, Target: target}, nil
	default:
		return Habit{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidHabit, kind)
	}
}

// Active filters out archived habits, keeping the input order.
func Active(habits []Habit) []Habit {
	active := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Archived {
			active = append(active, h)
		}
	}
	return active
}
