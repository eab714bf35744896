// Package calendar holds the civil date and wall-clock values bookings are expressed in.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"condo-reservations/internal/pkg/errs"
)

const (
	DateLayout      = "2006-01-02"
	MinutesPerDay   = 24 * 60
	timeOfDayFormat = "%02d:%02d"
)

var (
	ErrInvalidDate      = errs.NewIn(errs.ErrValidation, "invalid date")
	ErrInvalidTimeOfDay = errs.NewIn(errs.ErrValidation, "invalid time of day")
	ErrInvalidTimeSlot  = errs.NewIn(errs.ErrValidation, "end time must be after start time")
	ErrInvalidWeekday   = errs.NewIn(errs.ErrValidation, "weekday must be between 0 (Monday) and 6 (Sunday)")
)

// Date is a civil date with no zone attached.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errs.Wrapf(ErrInvalidDate, "%q", s)
	}
	return Date{t: t}, nil
}

// DateOf returns the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Day() int           { return d.t.Day() }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) String() string     { return d.t.Format(DateLayout) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Weekday numbers the day from 0 (Monday) to 6 (Sunday).
func (d Date) Weekday() Weekday {
	return Weekday((int(d.t.Weekday()) + 6) % 7)
}

// At returns the instant of the wall-clock time tod on this date in loc.
// 24:00 normalises to midnight of the next day.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), tod.minutes/60, tod.minutes%60, 0, 0, loc)
}

// Time returns midnight UTC of the date, the representation storage uses.
func (d Date) Time() time.Time { return d.t }

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func NewWeekday(v int) (Weekday, error) {
	if v < int(Monday) || v > int(Sunday) {
		return 0, errs.Wrapf(ErrInvalidWeekday, "got %d", v)
	}
	return Weekday(v), nil
}

func (w Weekday) Int() int { return int(w) }

// TimeOfDay is a wall-clock time with minute precision. 24:00 is allowed as a closing bound.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return TimeOfDay{}, errs.Wrapf(ErrInvalidTimeOfDay, "%02d:%02d", hour, minute)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return tod
}

// ParseTimeOfDay accepts "HH:MM" and, for compatibility with time columns, "HH:MM:SS" with zero seconds.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 3 && parts[2] == "00" {
		parts = parts[:2]
	}
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return TimeOfDay{}, errs.Wrapf(ErrInvalidTimeOfDay, "%q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, errs.Wrapf(ErrInvalidTimeOfDay, "%q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, errs.Wrapf(ErrInvalidTimeOfDay, "%q", s)
	}
	return NewTimeOfDay(h, m)
}

func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return TimeOfDay{}, errs.Wrapf(ErrInvalidTimeOfDay, "%d minutes", minutes)
	}
	return TimeOfDay{minutes: minutes}, nil
}

func (t TimeOfDay) Minutes() int            { return t.minutes }
func (t TimeOfDay) Hour() int               { return t.minutes / 60 }
func (t TimeOfDay) Minute() int             { return t.minutes % 60 }
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes < o.minutes }
func (t TimeOfDay) After(o TimeOfDay) bool  { return t.minutes > o.minutes }
func (t TimeOfDay) String() string          { return fmt.Sprintf(timeOfDayFormat, t.Hour(), t.Minute()) }
func (t TimeOfDay) Duration() time.Duration { return time.Duration(t.minutes) * time.Minute }
func (t TimeOfDay) Equal(o TimeOfDay) bool  { return t.minutes == o.minutes }
func (t TimeOfDay) Compare(o TimeOfDay) int { return t.minutes - o.minutes }

// TimeSlot is a half-open interval [start, end) within one day.
type TimeSlot struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeSlot(start, end TimeOfDay) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, errs.Wrapf(ErrInvalidTimeSlot, "%s-%s", start, end)
	}
	return TimeSlot{start: start, end: end}, nil
}

func ParseTimeSlot(start, end string) (TimeSlot, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(s, e)
}

func (s TimeSlot) Start() TimeOfDay { return s.start }
func (s TimeSlot) End() TimeOfDay   { return s.end }
func (s TimeSlot) Minutes() int     { return s.end.minutes - s.start.minutes }
func (s TimeSlot) String() string   { return s.start.String() + "-" + s.end.String() }

func (s TimeSlot) Duration() time.Duration {
	return time.Duration(s.Minutes()) * time.Minute
}

// Overlaps reports whether the half-open intervals intersect. Touching slots do not overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.start.minutes < o.end.minutes && o.start.minutes < s.end.minutes
}

// Within reports whether s lies inside [from, to).
func (s TimeSlot) Within(from, to TimeOfDay) bool {
	return s.start.minutes >= from.minutes && s.end.minutes <= to.minutes
}
