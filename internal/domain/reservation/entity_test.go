//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMachine(t *testing.T) {
	admin := builder.NewAdministrator()
	at := builder.BaseTime.Add(2 * time.Hour)

	type action func(r *reservation.Reservation, actor user.Actor) (*reservation.Reservation, reservation.Transition, error)
	approve := func(r *reservation.Reservation, a user.Actor) (*reservation.Reservation, reservation.Transition, error) {
		return r.Approve(a, at)
	}
	reject := func(r *reservation.Reservation, a user.Actor) (*reservation.Reservation, reservation.Transition, error) {
		return r.Reject(a, at, "maintenance scheduled")
	}
	cancel := func(r *reservation.Reservation, a user.Actor) (*reservation.Reservation, reservation.Transition, error) {
		return r.Cancel(a, at, "")
	}
	complete := func(r *reservation.Reservation, a user.Actor) (*reservation.Reservation, reservation.Transition, error) {
		return r.Complete(a, builder.BaseTime.AddDate(0, 0, 10))
	}

	cases := []struct {
		name string
		from reservation.Status
		do   action
		to   reservation.Status
		ok   bool
	}{
		{name: "approve pending", from: reservation.StatusPending, do: approve, to: reservation.StatusConfirmed, ok: true},
		{name: "reject pending", from: reservation.StatusPending, do: reject, to: reservation.StatusRejected, ok: true},
		{name: "cancel pending", from: reservation.StatusPending, do: cancel, to: reservation.StatusCancelled, ok: true},
		{name: "cancel confirmed", from: reservation.StatusConfirmed, do: cancel, to: reservation.StatusCancelled, ok: true},
		{name: "complete confirmed", from: reservation.StatusConfirmed, do: complete, to: reservation.StatusCompleted, ok: true},
		{name: "approve confirmed", from: reservation.StatusConfirmed, do: approve, to: reservation.StatusConfirmed},
		{name: "reject confirmed", from: reservation.StatusConfirmed, do: reject, to: reservation.StatusRejected},
		{name: "complete pending", from: reservation.StatusPending, do: complete, to: reservation.StatusCompleted},
		{name: "approve cancelled", from: reservation.StatusCancelled, do: approve, to: reservation.StatusConfirmed},
		{name: "cancel cancelled", from: reservation.StatusCancelled, do: cancel, to: reservation.StatusCancelled},
		{name: "cancel rejected", from: reservation.StatusRejected, do: cancel, to: reservation.StatusCancelled},
		{name: "cancel completed", from: reservation.StatusCompleted, do: cancel, to: reservation.StatusCancelled},
		{name: "approve rejected", from: reservation.StatusRejected, do: approve, to: reservation.StatusConfirmed},
		{name: "complete completed", from: reservation.StatusCompleted, do: complete, to: reservation.StatusCompleted},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			before := builder.NewReservationBuilder().WithStatus(c.from).BuildDomain()

			next, tr, err := c.do(before, admin)

			assert.Equal(t, c.from, before.Status(), "receiver must not change")
			if !c.ok {
				var te *reservation.TransitionError
				require.True(t, errs.As(err, &te))
				assert.Equal(t, c.from, te.From)
				assert.Equal(t, c.to, te.To)
				assert.True(t, errs.Is(err, errs.ErrInvalidStateTransition))
				assert.Nil(t, next)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.to, next.Status())
			assert.Equal(t, c.from, tr.From)
			assert.Equal(t, c.to, tr.To)
			assert.Equal(t, admin.ID(), tr.ActorID)
			assert.Equal(t, before.ID(), tr.ReservationID)
			assert.Equal(t, before.Version()+1, next.Version())
		})
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	admin := builder.NewAdministrator()
	at := builder.BaseTime.Add(2 * time.Hour)

	actions := []struct {
		name string
		to   reservation.Status
		do   func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error)
	}{
		{name: "approve", to: reservation.StatusConfirmed, do: func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error) {
			return r.Approve(admin, at)
		}},
		{name: "reject", to: reservation.StatusRejected, do: func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error) {
			return r.Reject(admin, at, "maintenance scheduled")
		}},
		{name: "cancel", to: reservation.StatusCancelled, do: func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error) {
			return r.Cancel(admin, at, "")
		}},
		{name: "complete", to: reservation.StatusCompleted, do: func(r *reservation.Reservation) (*reservation.Reservation, reservation.Transition, error) {
			return r.Complete(admin, builder.BaseTime.AddDate(0, 0, 10))
		}},
	}

	for _, from := range []reservation.Status{reservation.StatusCancelled, reservation.StatusCompleted, reservation.StatusRejected} {
		for _, a := range actions {
			t.Run(string(from)+" "+a.name, func(t *testing.T) {
				before := builder.NewReservationBuilder().WithStatus(from).BuildDomain()

				next, _, err := a.do(before)

				var te *reservation.TransitionError
				require.True(t, errs.As(err, &te))
				assert.Equal(t, from, te.From)
				assert.Equal(t, a.to, te.To)
				assert.True(t, errs.Is(err, errs.ErrInvalidStateTransition))
				assert.Nil(t, next)
				assert.Equal(t, from, before.Status())
			})
		}
	}
}

func TestApprove(t *testing.T) {
	at := builder.BaseTime.Add(time.Hour)

	t.Run("stamps approver and timestamp", func(t *testing.T) {
		admin := builder.NewAdministrator()
		r := builder.NewReservationBuilder().BuildDomain()

		next, tr, err := r.Approve(admin, at)
		require.NoError(t, err)
		require.NotNil(t, next.ApproverID())
		assert.Equal(t, admin.ID(), *next.ApproverID())
		assert.Equal(t, at, *next.ApprovedAt())
		assert.Equal(t, reservation.ActionApprove, tr.Action)
		assert.Nil(t, r.ApproverID())
	})

	t.Run("resident cannot approve, even their own booking", func(t *testing.T) {
		resident := builder.NewResident()
		r := builder.NewReservationBuilder().WithRequesterID(resident.ID()).BuildDomain()

		_, _, err := r.Approve(resident, at)
		require.ErrorIs(t, err, reservation.ErrAdministratorOnly)
		assert.True(t, errs.Is(err, errs.ErrPermissionDenied))
	})

	t.Run("permission is checked before state", func(t *testing.T) {
		r := builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).BuildDomain()

		_, _, err := r.Approve(builder.NewResident(), at)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}

func TestReject(t *testing.T) {
	admin := builder.NewAdministrator()
	at := builder.BaseTime.Add(time.Hour)

	t.Run("requires a reason", func(t *testing.T) {
		r := builder.NewReservationBuilder().BuildDomain()

		_, _, err := r.Reject(admin, at, "   ")
		require.ErrorIs(t, err, reservation.ErrRejectionReasonRequired)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("records the reason", func(t *testing.T) {
		r := builder.NewReservationBuilder().BuildDomain()

		next, tr, err := r.Reject(admin, at, " double booked ")
		require.NoError(t, err)
		require.NotNil(t, next.Reason())
		assert.Equal(t, "double booked", *next.Reason())
		assert.Equal(t, "double booked", tr.Reason)
	})

	t.Run("state is checked before the reason", func(t *testing.T) {
		r := builder.NewReservationBuilder().AsConfirmed().BuildDomain()

		_, _, err := r.Reject(admin, at, "")
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestCancel(t *testing.T) {
	at := builder.BaseTime.Add(time.Hour)
	owner := builder.NewResident()

	t.Run("owner may cancel", func(t *testing.T) {
		r := builder.NewReservationBuilder().WithRequesterID(owner.ID()).AsConfirmed().BuildDomain()

		next, _, err := r.Cancel(owner, at, "change of plans")
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled, next.Status())
		assert.Equal(t, "change of plans", *next.Reason())
	})

	t.Run("other residents may not", func(t *testing.T) {
		r := builder.NewReservationBuilder().WithRequesterID(owner.ID()).BuildDomain()

		_, _, err := r.Cancel(builder.NewResident(), at, "")
		require.ErrorIs(t, err, reservation.ErrNotOwner)
	})

	t.Run("reason is optional", func(t *testing.T) {
		r := builder.NewReservationBuilder().WithRequesterID(owner.ID()).BuildDomain()

		next, _, err := r.Cancel(owner, at, "")
		require.NoError(t, err)
		assert.Nil(t, next.Reason())
	})
}

func TestComplete(t *testing.T) {
	admin := builder.NewAdministrator()
	r := builder.NewReservationBuilder().WithSlot("10:00", "12:00").AsConfirmed().BuildDomain()
	end := r.EndAt(time.UTC)

	t.Run("cannot complete before the end", func(t *testing.T) {
		_, _, err := r.Complete(admin, end.Add(-time.Minute))
		require.ErrorIs(t, err, reservation.ErrNotYetFinished)
	})

	t.Run("can complete at the end", func(t *testing.T) {
		next, _, err := r.Complete(admin, end)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCompleted, next.Status())
	})

	t.Run("end is read in the caller's zone", func(t *testing.T) {
		loc := time.FixedZone("UTC-3", -3*60*60)
		// 12:00 in UTC-3 is 15:00 UTC
		_, _, err := r.Complete(admin, time.Date(2026, time.March, 4, 14, 0, 0, 0, time.UTC).In(loc))
		require.ErrorIs(t, err, reservation.ErrNotYetFinished)
	})
}
