package calendar

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Clock is injected wherever "now" matters so tests can pin instants.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func NewClock() Clock {
	return realClock{}
}

// Resolve picks the trading date for a request. An explicit date is used
// verbatim after validation; otherwise the latest non-weekend date on or
// before now. No holiday calendar.
func Resolve(clock Clock, explicit string) (time.Time, error) {
	if explicit != "" {
		d, err := time.Parse(time.DateOnly, explicit)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return d.UTC(), nil
	}
	return LastBusinessDay(clock.Now()), nil
}

// LastBusinessDay returns the latest date <= ref that is not Sat/Sun.
func LastBusinessDay(ref time.Time) time.Time {
	d := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// PreviousBusinessDay returns the latest business day strictly before d.
func PreviousBusinessDay(d time.Time) time.Time {
	return LastBusinessDay(d.AddDate(0, 0, -1))
}
