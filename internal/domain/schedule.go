package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/VTC-PlanningService/pkg/types"
)

// AvailabilityStatus represents the driver's declared state for a day.
// This is an advisory attribute: transitions are unconstrained and the
// status does not gate booking insertion (conflict checking is purely
// interval-based).
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusBusy        AvailabilityStatus = "busy"
	StatusOff         AvailabilityStatus = "off"
	StatusMaintenance AvailabilityStatus = "maintenance"
)

// IsValid returns true if the status is one of the four known values.
func (s AvailabilityStatus) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Break is a pause inside the work window with a free-text reason.
type Break struct {
	Interval Interval `json:"interval"`
	Reason   string   `json:"reason"`
}

// Booking is a booked interval on a driver's day.
// ExternalRef is an opaque back-reference to an external ride record;
// the core never dereferences it. Platform is an open identifier,
// external platforms may appear without a schema change.
type Booking struct {
	Interval          Interval `json:"interval"`
	ExternalRef       *string  `json:"externalRef,omitempty"`
	Platform          string   `json:"platform"`
	EstimatedEarnings float64  `json:"estimatedEarnings"`
}

// DailyGoals planned targets for a day. All fields optional, default zero.
type DailyGoals struct {
	TargetRides    int      `json:"targetRides"`
	TargetEarnings float64  `json:"targetEarnings"`
	TargetHours    float64  `json:"targetHours"`
	PreferredZones []string `json:"preferredZones,omitempty"`
}

// ActualResults derived summary of completed bookings. Cached, never a
// direct write target: always rebuilt via RecomputeActualResults.
type ActualResults struct {
	TotalRides    int     `json:"totalRides"`
	TotalEarnings float64 `json:"totalEarnings"`
	TotalHours    float64 `json:"totalHours"`
	AverageRating float64 `json:"averageRating"`
}

// PlatformSyncState per-platform online flag with last-sync timestamp.
type PlatformSyncState struct {
	IsOnline bool       `json:"isOnline"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// Reminder informational note at a time of day. No scheduling invariant.
type Reminder struct {
	Time        types.TimeString `json:"time"`
	Message     string           `json:"message"`
	IsCompleted bool             `json:"isCompleted"`
}

// CompletedBooking is a booking whose external lifecycle reached
// "completed", together with actuals recorded by the external platform.
// Supplied by the caller: the engine does not track ride lifecycle itself.
type CompletedBooking struct {
	Booking        Booking
	ActualEarnings *float64 // nil = использовать EstimatedEarnings
	Rating         *float64 // nil = поездка без оценки
}

// DaySchedule is the complete availability/booking state for one driver on
// one calendar date. Identity is (DriverID, Date), unique. The aggregate
// has value semantics: operations mutate the in-memory copy, the storage
// collaborator performs the atomic compare-and-swap.
type DaySchedule struct {
	ID       int64
	DriverID int64
	Date     time.Time

	AvailabilityStatus AvailabilityStatus
	WorkWindow         *Interval
	Breaks             []Break
	Bookings           []Booking
	DailyGoals         DailyGoals
	ActualResults      ActualResults
	PlatformSync       map[string]PlatformSyncState
	Reminders          []Reminder

	// Version счетчик для optimistic locking на стороне хранилища
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefaultDaySchedule synthesizes the transient default day used when no
// record is stored for a date: available, default work window, no bookings.
// Never persisted by read paths.
func NewDefaultDaySchedule(driverID int64, date time.Time) *DaySchedule {
	window := Interval{Start: DefaultWorkStart, End: DefaultWorkEnd}
	return NewDefaultDayScheduleWithWindow(driverID, date, window)
}

// NewDefaultDayScheduleWithWindow synthesizes a default day with an explicit
// work window (the service layer passes the configured one).
func NewDefaultDayScheduleWithWindow(driverID int64, date time.Time, window Interval) *DaySchedule {
	return &DaySchedule{
		DriverID:           driverID,
		Date:               DateOnly(date),
		AvailabilityStatus: StatusAvailable,
		WorkWindow:         &window,
		Breaks:             []Break{},
		Bookings:           []Booking{},
		PlatformSync:       map[string]PlatformSyncState{},
		Reminders:          []Reminder{},
	}
}

// IsStored returns true if the schedule has been persisted.
func (s *DaySchedule) IsStored() bool {
	return s.ID != 0
}

// SetAvailability replaces the day's status, work window and break list.
// Breaks must lie inside the window and must not overlap each other.
//
// Existing bookings are NOT re-validated against the new window: bookings
// are checked only at insertion time, so shrinking the window after
// bookings exist does not auto-cancel them. AvailableHours may then go
// negative, which callers use to detect overcommitment.
func (s *DaySchedule) SetAvailability(status AvailabilityStatus, workWindow *Interval, breaks []Break) error {
	if workWindow != nil {
		if err := workWindow.Validate(); err != nil {
			return err
		}
	}

	if len(breaks) > 0 && workWindow == nil {
		return fmt.Errorf("%w: breaks require a work window", ErrInvalidInterval)
	}

	for _, b := range breaks {
		if err := b.Interval.Validate(); err != nil {
			return err
		}
		if !workWindow.Contains(b.Interval) {
			return fmt.Errorf("%w: break %s outside work window %s", ErrInvalidInterval, b.Interval, workWindow)
		}
	}

	// Перерывы не должны пересекаться между собой
	for i := 0; i < len(breaks); i++ {
		for j := i + 1; j < len(breaks); j++ {
			if breaks[i].Interval.Overlaps(breaks[j].Interval) {
				return fmt.Errorf("%w: breaks %s and %s overlap", ErrInvalidInterval, breaks[i].Interval, breaks[j].Interval)
			}
		}
	}

	sorted := make([]Break, len(breaks))
	copy(sorted, breaks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Interval.Start.IsBefore(sorted[j].Interval.Start)
	})

	s.AvailabilityStatus = status
	s.WorkWindow = workWindow
	s.Breaks = sorted
	return nil
}

// TotalAvailableHours returns work window hours minus break hours,
// clamped to >= 0. A day without a work window has zero available hours.
func (s *DaySchedule) TotalAvailableHours() float64 {
	if s.WorkWindow == nil {
		return 0
	}

	hours := s.WorkWindow.DurationHours()
	for _, b := range s.Breaks {
		hours -= b.Interval.DurationHours()
	}

	if hours < 0 {
		return 0
	}
	return hours
}

// TotalBookedHours returns the sum of booked interval hours,
// regardless of external booking status.
func (s *DaySchedule) TotalBookedHours() float64 {
	var hours float64
	for _, b := range s.Bookings {
		hours += b.Interval.DurationHours()
	}
	return hours
}

// AvailableHours returns TotalAvailableHours minus TotalBookedHours.
// May be negative when the day is overbooked relative to a subsequently
// shrunk window; surfaced as-is so callers can detect overcommitment.
func (s *DaySchedule) AvailableHours() float64 {
	return s.TotalAvailableHours() - s.TotalBookedHours()
}

// CanAccept reports whether the candidate interval may be inserted without
// overlapping any existing booking. Availability status is NOT consulted:
// it is advisory display metadata, not an enforcement gate.
func (s *DaySchedule) CanAccept(candidate Interval) bool {
	return CanAccept(s.Bookings, candidate)
}

// AddBooking inserts a booking through the conflict check. The single
// invariant-enforcing write path for bookings; fails with ErrSlotConflict
// when the candidate overlaps an existing booking.
func (s *DaySchedule) AddBooking(candidate Interval, platform string, estimatedEarnings float64, externalRef *string) (*Booking, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	if !s.CanAccept(candidate) {
		return nil, fmt.Errorf("%w: %s", ErrSlotConflict, candidate)
	}

	booking := Booking{
		Interval:          candidate,
		ExternalRef:       externalRef,
		Platform:          platform,
		EstimatedEarnings: estimatedEarnings,
	}
	s.Bookings = append(s.Bookings, booking)

	return &s.Bookings[len(s.Bookings)-1], nil
}

// RemoveBooking removes the booking at the given position.
// No cascading side effects.
func (s *DaySchedule) RemoveBooking(index int) error {
	if index < 0 || index >= len(s.Bookings) {
		return fmt.Errorf("%w: index %d, %d bookings", ErrIndexOutOfRange, index, len(s.Bookings))
	}
	s.Bookings = append(s.Bookings[:index], s.Bookings[index+1:]...)
	return nil
}

// SetDailyGoals replaces the day's planned targets.
func (s *DaySchedule) SetDailyGoals(goals DailyGoals) {
	s.DailyGoals = goals
}

// RecomputeActualResults rebuilds the cached ActualResults from the
// completed bookings supplied by the caller. Idempotent, no side effects
// beyond the schedule's own fields.
func (s *DaySchedule) RecomputeActualResults(completed []CompletedBooking) {
	results := ActualResults{TotalRides: len(completed)}

	var ratingSum float64
	var ratedCount int

	for _, c := range completed {
		earnings := c.Booking.EstimatedEarnings
		if c.ActualEarnings != nil {
			earnings = *c.ActualEarnings
		}
		results.TotalEarnings += earnings
		results.TotalHours += c.Booking.Interval.DurationHours()

		if c.Rating != nil {
			ratingSum += *c.Rating
			ratedCount++
		}
	}

	if ratedCount > 0 {
		results.AverageRating = ratingSum / float64(ratedCount)
	}

	s.ActualResults = results
}

// SetPlatformSync updates the online flag for an external platform and
// stamps the sync time.
func (s *DaySchedule) SetPlatformSync(platform string, isOnline bool, at time.Time) {
	if s.PlatformSync == nil {
		s.PlatformSync = map[string]PlatformSyncState{}
	}
	s.PlatformSync[platform] = PlatformSyncState{IsOnline: isOnline, LastSync: &at}
}

// AddReminder appends an informational reminder.
func (s *DaySchedule) AddReminder(r Reminder) {
	s.Reminders = append(s.Reminders, r)
}

// DateOnly обнуляет время, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
