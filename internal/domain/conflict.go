package domain

// CanAccept decides whether a candidate interval may be inserted next to
// the existing bookings: acceptable iff it overlaps none of them.
//
// Пересечение проверяется по строгим неравенствам, поэтому граничащие
// интервалы не конфликтуют:
//   - существующее 09:00-10:00, кандидат 09:30-10:30 → конфликт
//   - существующее 09:00-10:00, кандидат 10:00-11:00 → нет конфликта (граничат)
//   - существующее 09:30-09:45, кандидат 09:00-10:00 → конфликт (полное покрытие)
//
// Linear scan: bookings for a single day number in the tens, an interval
// tree would be an internal optimization with no observable difference.
func CanAccept(existing []Booking, candidate Interval) bool {
	for _, b := range existing {
		if b.Interval.Overlaps(candidate) {
			return false
		}
	}
	return true
}
