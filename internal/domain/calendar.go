package domain

import "time"

// ScheduleLookup returns the stored DaySchedule for a date, or nil when
// none exists. The storage collaborator provides the implementation.
type ScheduleLookup func(date time.Time) *DaySchedule

// AssembleRange stitches DaySchedules over [startDate, endDate] inclusive
// into a gap-free, date-ordered sequence. Missing dates are filled with
// transient defaults that are never written back.
//
// Total function: always returns exactly endDate-startDate+1 entries for a
// valid range, and an empty slice when endDate precedes startDate.
func AssembleRange(driverID int64, startDate, endDate time.Time, lookup ScheduleLookup) []*DaySchedule {
	window := Interval{Start: DefaultWorkStart, End: DefaultWorkEnd}
	return AssembleRangeWithWindow(driverID, startDate, endDate, window, lookup)
}

// AssembleRangeWithWindow is AssembleRange with an explicit work window for
// the synthesized defaults (the service layer passes the configured one).
func AssembleRangeWithWindow(driverID int64, startDate, endDate time.Time, window Interval, lookup ScheduleLookup) []*DaySchedule {
	start := DateOnly(startDate)
	end := DateOnly(endDate)

	if end.Before(start) {
		return []*DaySchedule{}
	}

	schedules := make([]*DaySchedule, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if stored := lookup(d); stored != nil {
			schedules = append(schedules, stored)
			continue
		}
		schedules = append(schedules, NewDefaultDayScheduleWithWindow(driverID, d, window))
	}

	return schedules
}

// WeekBounds returns the Monday-start 7-day range containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := DateOnly(t)

	// time.Weekday: Sunday=0, поэтому сдвигаем к понедельнику вручную
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}

	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthBounds returns the calendar-month range containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}
