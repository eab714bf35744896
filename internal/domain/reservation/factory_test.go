//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/clock"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type factoryCase struct {
	name     string
	resource func(*builder.ResourceBuilder)
	mutate   func(*builder.ReservationBuilder)
	errIs    error
}

func newFactory() *reservation.Factory {
	return reservation.NewFactory(clock.NewFixedClock(builder.BaseTime), reservation.NewHourlyRateCalculator(), time.UTC)
}

func TestFactoryCreateReservation(t *testing.T) {
	requester := builder.NewResident()

	t.Run("basic success case", func(t *testing.T) {
		res := builder.NewResourceBuilder().WithHourlyRate("50.00").MustBuildDomain()
		req := builder.NewReservationBuilder().WithSlot("10:00", "11:30").BuildRequest()

		actual, err := newFactory().CreateReservation(res, requester, req)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, reservation.StatusPending, actual.Status())
		assert.Equal(t, res.ID(), actual.ResourceID())
		assert.Equal(t, requester.ID(), actual.RequesterID())
		assert.Equal(t, "75.00", actual.Cost().StringFixed(2))
		assert.Equal(t, builder.BaseTime, actual.CreatedAt())
		assert.Nil(t, actual.ApproverID())

		tr := reservation.CreationTransition(actual)
		assert.Equal(t, reservation.ActionCreate, tr.Action)
		assert.Equal(t, reservation.StatusPending, tr.To)
		assert.Equal(t, reservation.Status(""), tr.From)
	})

	cases := []factoryCase{
		{
			name:   "date in the past",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate(builder.BaseDate.AddDays(-3)) },
			errIs:  reservation.ErrDateInPast,
		},
		{
			name:     "start earlier today",
			resource: func(b *builder.ResourceBuilder) { b.WithAdvanceHours(0, 720) },
			mutate: func(b *builder.ReservationBuilder) {
				b.WithDate(builder.BaseDate.AddDays(-2)).WithSlot("08:00", "09:00")
			},
			errIs: reservation.ErrStartInPast,
		},
		{
			name:     "later today without advance rule",
			resource: func(b *builder.ResourceBuilder) { b.WithAdvanceHours(0, 720) },
			mutate: func(b *builder.ReservationBuilder) {
				b.WithDate(builder.BaseDate.AddDays(-2)).WithSlot("10:00", "11:00")
			},
		},
		{
			name:   "empty purpose",
			mutate: func(b *builder.ReservationBuilder) { b.WithPurpose(" ") },
			errIs:  reservation.ErrEmptyPurpose,
		},
		{
			name:   "zero people",
			mutate: func(b *builder.ReservationBuilder) { b.WithPartySize(0) },
			errIs:  reservation.ErrInvalidPartySize,
		},
		{
			name:     "over capacity",
			resource: func(b *builder.ResourceBuilder) { b.WithCapacity(5) },
			mutate:   func(b *builder.ReservationBuilder) { b.WithPartySize(6) },
			errIs:    resource.ErrCapacityExceeded,
		},
		{
			name:     "inactive resource",
			resource: func(b *builder.ResourceBuilder) { b.AsInactive() },
			errIs:    resource.ErrResourceInactive,
		},
		{
			name: "inside minimum notice",
			mutate: func(b *builder.ReservationBuilder) {
				b.WithDate(builder.BaseDate.AddDays(-1)).WithSlot("08:00", "09:00")
			},
			errIs: resource.ErrLeadTimeNotMet,
		},
		{
			name:   "beyond advance window",
			mutate: func(b *builder.ReservationBuilder) { b.WithDate(builder.BaseDate.AddDays(60)) },
			errIs:  resource.ErrBeyondAdvanceWindow,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rb := builder.NewResourceBuilder()
			if c.resource != nil {
				rb.With(c.resource)
			}
			resb := builder.NewReservationBuilder()
			if c.mutate != nil {
				resb.With(c.mutate)
			}

			actual, err := newFactory().CreateReservation(rb.MustBuildDomain(), requester, resb.BuildRequest())
			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
				return
			}
			require.Nil(t, actual)
			require.ErrorIs(t, err, c.errIs)
		})
	}

	t.Run("past date is a validation error", func(t *testing.T) {
		req := builder.NewReservationBuilder().WithDate(builder.BaseDate.AddDays(-3)).BuildRequest()
		_, err := newFactory().CreateReservation(builder.NewResourceBuilder().MustBuildDomain(), requester, req)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestFactoryRescheduleReservation(t *testing.T) {
	owner := builder.NewResident()
	res := builder.NewResourceBuilder().WithHourlyRate("20.00").MustBuildDomain()
	original := builder.NewReservationBuilder().
		WithResourceID(res.ID()).
		WithRequesterID(owner.ID()).
		WithCost("40.00").
		BuildDomain()
	slot := mustSlot(t, "14:00", "17:00")

	t.Run("recomputes cost", func(t *testing.T) {
		next, tr, err := newFactory().RescheduleReservation(res, original, owner, builder.BaseDate.AddDays(1), slot)
		require.NoError(t, err)
		assert.Equal(t, "60.00", next.Cost().StringFixed(2))
		assert.Equal(t, "14:00-17:00", next.TimeSlot().String())
		assert.Equal(t, reservation.ActionReschedule, tr.Action)
		assert.Equal(t, "40.00", original.Cost().StringFixed(2))
	})

	t.Run("only pending", func(t *testing.T) {
		confirmed := builder.NewReservationBuilder().WithRequesterID(owner.ID()).AsConfirmed().BuildDomain()
		_, _, err := newFactory().RescheduleReservation(res, confirmed, owner, builder.BaseDate, slot)
		require.ErrorIs(t, err, reservation.ErrNotReschedulable)
	})

	t.Run("only owner or administrator", func(t *testing.T) {
		_, _, err := newFactory().RescheduleReservation(res, original, builder.NewResident(), builder.BaseDate, slot)
		require.ErrorIs(t, err, reservation.ErrNotOwner)

		_, _, err = newFactory().RescheduleReservation(res, original, builder.NewAdministrator(), builder.BaseDate, slot)
		require.NoError(t, err)
	})

	t.Run("permission is checked before the new schedule", func(t *testing.T) {
		past := builder.BaseDate.AddDays(-5)
		_, _, err := newFactory().RescheduleReservation(res, original, builder.NewResident(), past, slot)
		require.ErrorIs(t, err, reservation.ErrNotOwner)
		assert.True(t, errs.Is(err, errs.ErrPermissionDenied))
	})

	t.Run("state is checked before the new schedule", func(t *testing.T) {
		confirmed := builder.NewReservationBuilder().WithRequesterID(owner.ID()).AsConfirmed().BuildDomain()
		past := builder.BaseDate.AddDays(-5)
		_, _, err := newFactory().RescheduleReservation(res, confirmed, owner, past, slot)
		require.ErrorIs(t, err, reservation.ErrNotReschedulable)
		assert.True(t, errs.Is(err, errs.ErrInvalidStateTransition))
	})
}
