//go:build unit

package resource_test

import (
	"testing"
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ResourceBuilder)
	errIs  error
}

func TestResource(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewResourceBuilder().
			WithName("  Salón   de  eventos ").
			WithHourlyRate("12.345").
			WithWeekdays(6, 0, 2, 0).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Salón de eventos", actual.Name())
		assert.Equal(t, "12.35", actual.HourlyRate().StringFixed(2))
		assert.Equal(t, []calendar.Weekday{calendar.Monday, calendar.Wednesday, calendar.Sunday}, actual.AllowedWeekdays())
		assert.True(t, actual.IsActive())
	})

	t.Run("rule validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.ResourceBuilder) { b.WithName("   ") },
				errIs:  resource.ErrEmptyResourceName,
			},
			{
				name:   "negative rate",
				mutate: func(b *builder.ResourceBuilder) { b.WithHourlyRate("-0.01") },
				errIs:  resource.ErrNegativeHourlyRate,
			},
			{
				name:   "zero rate is allowed",
				mutate: func(b *builder.ResourceBuilder) { b.WithHourlyRate("0") },
			},
			{
				name:   "opening equals closing",
				mutate: func(b *builder.ResourceBuilder) { b.WithHours("10:00", "10:00") },
				errIs:  resource.ErrInvalidOpeningHours,
			},
			{
				name:   "opening after closing",
				mutate: func(b *builder.ResourceBuilder) { b.WithHours("22:00", "08:00") },
				errIs:  resource.ErrInvalidOpeningHours,
			},
			{
				name:   "zero capacity",
				mutate: func(b *builder.ResourceBuilder) { b.WithCapacity(0) },
				errIs:  resource.ErrInvalidCapacity,
			},
			{
				name:   "min duration above max",
				mutate: func(b *builder.ResourceBuilder) { b.WithDurationHours(5, 4) },
				errIs:  resource.ErrInvalidDurationRange,
			},
			{
				name:   "zero min duration",
				mutate: func(b *builder.ResourceBuilder) { b.WithDurationHours(0, 4) },
				errIs:  resource.ErrInvalidDurationRange,
			},
			{
				name:   "min advance above max",
				mutate: func(b *builder.ResourceBuilder) { b.WithAdvanceHours(48, 24) },
				errIs:  resource.ErrInvalidAdvanceWindow,
			},
			{
				name:   "weekday out of range",
				mutate: func(b *builder.ResourceBuilder) { b.WithWeekdays(0, 7) },
				errIs:  calendar.ErrInvalidWeekday,
			},
			{
				name:   "no weekdays",
				mutate: func(b *builder.ResourceBuilder) { b.WithWeekdays() },
				errIs:  resource.ErrNoAllowedWeekdays,
			},
			{
				name:   "unknown status",
				mutate: func(b *builder.ResourceBuilder) { b.WithStatus("closed") },
				errIs:  resource.ErrInvalidStatus,
			},
		})
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewResourceBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
				assert.True(t, errs.Is(err, errs.ErrValidation))
			}
		})
	}
}

func TestIsBookableOn(t *testing.T) {
	wednesday := calendar.NewDate(2026, time.March, 4)
	sunday := calendar.NewDate(2026, time.March, 8)
	slot := func(s, e string) calendar.TimeSlot {
		ts, err := calendar.ParseTimeSlot(s, e)
		require.NoError(t, err)
		return ts
	}
	weekdaysOnly := builder.NewResourceBuilder().WithWeekdays(0, 1, 2, 3, 4)

	cases := []struct {
		name  string
		res   *builder.ResourceBuilder
		date  calendar.Date
		slot  calendar.TimeSlot
		errIs error
	}{
		{name: "within all rules", res: weekdaysOnly, date: wednesday, slot: slot("10:00", "12:00")},
		{name: "exactly opening to max duration", res: weekdaysOnly, date: wednesday, slot: slot("08:00", "12:00")},
		{name: "ends exactly at closing", res: weekdaysOnly, date: wednesday, slot: slot("20:00", "22:00")},
		{name: "inactive resource", res: builder.NewResourceBuilder().AsInactive(), date: wednesday, slot: slot("10:00", "12:00"), errIs: resource.ErrResourceInactive},
		{name: "maintenance resource", res: builder.NewResourceBuilder().AsUnderMaintenance(), date: wednesday, slot: slot("10:00", "12:00"), errIs: resource.ErrResourceInactive},
		{name: "closed weekday", res: weekdaysOnly, date: sunday, slot: slot("10:00", "12:00"), errIs: resource.ErrDayNotAllowed},
		{name: "starts before opening", res: weekdaysOnly, date: wednesday, slot: slot("07:30", "09:00"), errIs: resource.ErrOutsideOperatingHours},
		{name: "ends after closing", res: weekdaysOnly, date: wednesday, slot: slot("21:00", "23:00"), errIs: resource.ErrOutsideOperatingHours},
		{name: "too short", res: weekdaysOnly, date: wednesday, slot: slot("10:00", "10:30"), errIs: resource.ErrDurationOutOfRange},
		{name: "too long", res: weekdaysOnly, date: wednesday, slot: slot("10:00", "14:30"), errIs: resource.ErrDurationOutOfRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := c.res.MustBuildDomain()
			err := res.IsBookableOn(c.date, c.slot)
			if c.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, c.errIs)
			assert.True(t, errs.Is(err, errs.ErrResourceUnavailable))
		})
	}

	t.Run("each rejection reason is distinct", func(t *testing.T) {
		reasons := []error{
			resource.ErrResourceInactive,
			resource.ErrDayNotAllowed,
			resource.ErrOutsideOperatingHours,
			resource.ErrDurationOutOfRange,
		}
		for i, a := range reasons {
			for j, b := range reasons {
				if i != j {
					assert.False(t, errs.Is(a, b), "%v should not match %v", a, b)
				}
			}
		}
	})
}

func TestCheckLeadTime(t *testing.T) {
	res := builder.NewResourceBuilder().WithAdvanceHours(24, 720).MustBuildDomain()
	now := builder.BaseTime

	require.NoError(t, res.CheckLeadTime(now.Add(24*time.Hour), now))
	require.NoError(t, res.CheckLeadTime(now.Add(720*time.Hour), now))
	require.ErrorIs(t, res.CheckLeadTime(now.Add(23*time.Hour), now), resource.ErrLeadTimeNotMet)
	require.ErrorIs(t, res.CheckLeadTime(now.Add(721*time.Hour), now), resource.ErrBeyondAdvanceWindow)
}

func TestCheckCapacity(t *testing.T) {
	res := builder.NewResourceBuilder().WithCapacity(10).MustBuildDomain()

	require.NoError(t, res.CheckCapacity(10))
	require.ErrorIs(t, res.CheckCapacity(11), resource.ErrCapacityExceeded)
}

func TestUpdateAndDeactivate(t *testing.T) {
	res := builder.NewResourceBuilder().MustBuildDomain()
	later := builder.BaseTime.Add(time.Hour)

	rules := resource.DefaultRules("Quincho", res.HourlyRate())
	updated, err := res.Update(rules, later)
	require.NoError(t, err)
	assert.Equal(t, "Quincho", updated.Name())
	assert.Equal(t, res.ID(), updated.ID())
	assert.Equal(t, res.CreatedAt(), updated.CreatedAt())
	assert.Equal(t, later, updated.UpdatedAt())
	assert.NotEqual(t, "Quincho", res.Name(), "receiver must not change")

	_, err = res.Update(resource.Rules{Name: "x"}, later)
	require.Error(t, err)

	inactive := res.Deactivate(later)
	assert.Equal(t, resource.StatusInactive, inactive.Status())
	assert.True(t, res.IsActive())
}
