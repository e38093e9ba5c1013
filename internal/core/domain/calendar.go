package domain

import (
	"fmt"
	"strings"
	"time"
)

// CalendarDayLayout is the wire format for all day-granularity dates.
const CalendarDayLayout = "2006-01-02"

// CalendarDay is a single UTC calendar day. All engine components compare ledger
// rows against CalendarDay bounds rather than raw timestamps, so a deployment
// whose server timezone disagrees with stored UTC timestamps cannot shift rows
// into a neighbouring day.
type CalendarDay struct {
	t time.Time // midnight UTC
}

// ParseCalendarDay parses a "YYYY-MM-DD" wire string into a CalendarDay.
func ParseCalendarDay(s string) (CalendarDay, error) {
	t, err := time.ParseInLocation(CalendarDayLayout, s, time.UTC)
	if err != nil {
		return CalendarDay{}, fmt.Errorf("invalid calendar day %q: %w", s, err)
	}
	return CalendarDay{t: t}, nil
}

// DayOf truncates an arbitrary timestamp to its UTC calendar day.
func DayOf(t time.Time) CalendarDay {
	u := t.UTC()
	return CalendarDay{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// Start returns the inclusive lower bound of the day (00:00:00.000 UTC).
func (d CalendarDay) Start() time.Time {
	return d.t
}

// End returns the inclusive upper bound of the day (23:59:59.999999999 UTC).
func (d CalendarDay) End() time.Time {
	return d.t.Add(24*time.Hour - time.Nanosecond)
}

// Time returns the midnight-UTC timestamp the day is stored as.
func (d CalendarDay) Time() time.Time {
	return d.t
}

// AddDays returns the day shifted by n calendar days.
func (d CalendarDay) AddDays(n int) CalendarDay {
	return CalendarDay{t: d.t.AddDate(0, 0, n)}
}

func (d CalendarDay) After(o CalendarDay) bool  { return d.t.After(o.t) }
func (d CalendarDay) Before(o CalendarDay) bool { return d.t.Before(o.t) }
func (d CalendarDay) Equal(o CalendarDay) bool  { return d.t.Equal(o.t) }
func (d CalendarDay) IsZero() bool              { return d.t.IsZero() }

func (d CalendarDay) String() string {
	return d.t.Format(CalendarDayLayout)
}

// MarshalJSON emits the day as a "YYYY-MM-DD" string.
func (d CalendarDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a "YYYY-MM-DD" string.
func (d *CalendarDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseCalendarDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
