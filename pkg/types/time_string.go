package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeFormat формат времени "HH:MM" (wall-clock, без даты и таймзоны)
const TimeFormat = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfDay возвращается, когда арифметика над временем выходит за пределы суток
	ErrTimeOutOfDay = errors.New("types: time arithmetic crosses day boundary")
)

// TimeString represents a wall-clock time of day as "HH:MM".
// Comparisons never cross a midnight boundary.
type TimeString string

// NewTimeString создает TimeString из time.Time (берется только час и минута)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String returns the "HH:MM" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true if the value is empty.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (ts TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore returns true if ts is strictly earlier than other.
// Invalid values compare as 00:00.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, _ := ts.Minutes()
	b, _ := other.Minutes()
	return a < b
}

// IsAfter returns true if ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	a, _ := ts.Minutes()
	b, _ := other.Minutes()
	return a > b
}

// AddMinutes возвращает время через m минут
// Возвращает ErrTimeOutOfDay, если результат выходит за пределы суток
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	minutes, err := ts.Minutes()
	if err != nil {
		return "", err
	}

	total := minutes + m
	if total < 0 || total > MinutesPerDay {
		return "", fmt.Errorf("%w: %s + %dm", ErrTimeOutOfDay, ts, m)
	}

	// 24:00 не представимо в формате "15:04", поэтому граница суток недостижима
	if total == MinutesPerDay {
		return "", fmt.Errorf("%w: %s + %dm", ErrTimeOutOfDay, ts, m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// MinutesUntil возвращает количество минут от ts до other (может быть отрицательным)
func (ts TimeString) MinutesUntil(other TimeString) (int, error) {
	a, err := ts.Minutes()
	if err != nil {
		return 0, err
	}
	b, err := other.Minutes()
	if err != nil {
		return 0, err
	}
	return b - a, nil
}
