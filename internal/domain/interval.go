package domain

import (
	"fmt"

	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// Interval represents a half-open time range [Start, End) within a single
// calendar day. Start is strictly before End; zero-length and inverted
// intervals are rejected at construction.
type Interval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// NewInterval creates an Interval, validating the time format and Start < End.
func NewInterval(start, end types.TimeString) (Interval, error) {
	if err := start.Validate(); err != nil {
		return Interval{}, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	if err := end.Validate(); err != nil {
		return Interval{}, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	if !start.IsBefore(end) {
		return Interval{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Validate re-checks the construction invariant. Useful after decoding
// an Interval from JSON, where NewInterval is bypassed.
func (i Interval) Validate() error {
	_, err := NewInterval(i.Start, i.End)
	return err
}

// Overlaps reports whether two intervals share interior points.
// Intervals that merely touch at an endpoint do NOT overlap:
// [09:00,10:00) and [10:00,11:00) are compatible.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains reports whether other lies fully inside i (boundaries allowed).
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !i.End.IsBefore(other.End)
}

// DurationMinutes returns the interval length in minutes.
// Always >= 0 given the construction invariant.
func (i Interval) DurationMinutes() int {
	m, err := i.Start.MinutesUntil(i.End)
	if err != nil || m < 0 {
		return 0
	}
	return m
}

// DurationHours returns the interval length in hours.
func (i Interval) DurationHours() float64 {
	return float64(i.DurationMinutes()) / 60.0
}

// String returns "HH:MM-HH:MM".
func (i Interval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}
