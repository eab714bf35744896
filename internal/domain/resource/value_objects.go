package resource

import (
	"slices"
	"strings"

	"condo-reservations/internal/domain/calendar"

	"github.com/shopspring/decimal"
)

const MaxResourceNameLength = 120

// Catalog defaults applied when an administrator leaves a rule unset.
const (
	DefaultCapacity               = 1
	DefaultMinDurationHours       = 1
	DefaultMaxDurationHours       = 4
	DefaultMinAdvanceHours        = 24
	DefaultMaxAdvanceHours        = 720
	DefaultOpeningTime            = "08:00"
	DefaultClosingTime            = "22:00"
	rateDecimalPlaces       int32 = 2
)

// NormalizeName trims the name and collapses inner whitespace runs.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NameKey is the case-insensitive identity of a name.
func NameKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}

func validateName(name string) (string, error) {
	n := NormalizeName(name)
	if n == "" {
		return "", ErrEmptyResourceName
	}
	if len([]rune(n)) > MaxResourceNameLength {
		return "", ErrResourceNameTooLong
	}
	return n, nil
}

// NormalizeRate quantises a rate to cents, rounding half up.
func NormalizeRate(rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsNegative() {
		return decimal.Decimal{}, ErrNegativeHourlyRate
	}
	return rate.Round(rateDecimalPlaces), nil
}

// AllWeekdays is Monday through Sunday.
func AllWeekdays() []calendar.Weekday {
	return []calendar.Weekday{
		calendar.Monday, calendar.Tuesday, calendar.Wednesday, calendar.Thursday,
		calendar.Friday, calendar.Saturday, calendar.Sunday,
	}
}

// NormalizeWeekdays validates, deduplicates and sorts weekday numbers.
func NormalizeWeekdays(values []int) ([]calendar.Weekday, error) {
	if len(values) == 0 {
		return nil, ErrNoAllowedWeekdays
	}
	out := make([]calendar.Weekday, 0, len(values))
	for _, v := range values {
		w, err := calendar.NewWeekday(v)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return out, nil
}

func WeekdayInts(days []calendar.Weekday) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = d.Int()
	}
	return out
}
