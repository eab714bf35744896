package repository

import (
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const resourceColumns = `id, name, description, hourly_rate, status, capacity,
	opening_time, closing_time, allowed_weekdays,
	min_duration_hours, max_duration_hours, min_advance_hours, max_advance_hours,
	created_at, updated_at`

const reservationColumns = `id, resource_id, requester_id, booking_date, start_time, end_time,
	purpose, party_size, notes, status, cost, approver_id, approved_at, reason, version,
	created_at, updated_at`

func scanResource(row pgx.Row) (*resource.Resource, error) {
	var (
		id                   uuid.UUID
		name, description    string
		rate                 pgtype.Numeric
		status               string
		capacity             int32
		opening, closing     pgtype.Time
		weekdays             []int16
		minDur, maxDur       int32
		minAdv, maxAdv       int32
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &description, &rate, &status, &capacity,
		&opening, &closing, &weekdays,
		&minDur, &maxDur, &minAdv, &maxAdv,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	hourlyRate, err := pgconv.DecimalFromNumeric(rate)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s hourly_rate", id)
	}
	openingTime, err := pgconv.TimeOfDayFromPgtype(opening)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s opening_time", id)
	}
	closingTime, err := pgconv.TimeOfDayFromPgtype(closing)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s closing_time", id)
	}
	days := make([]int, len(weekdays))
	for i, d := range weekdays {
		days[i] = int(d)
	}
	allowed, err := resource.NormalizeWeekdays(days)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s allowed_weekdays", id)
	}

	return resource.Reconstruct(
		id, name, description, hourlyRate, resource.Status(status), int(capacity),
		openingTime, closingTime, allowed,
		int(minDur), int(maxDur), int(minAdv), int(maxAdv),
		createdAt, updatedAt,
	), nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, resourceID, requesterID uuid.UUID
		date                        pgtype.Date
		start, end                  pgtype.Time
		purpose, notes, status      string
		partySize, version          int32
		cost                        pgtype.Numeric
		approverID                  pgtype.UUID
		approvedAt                  pgtype.Timestamptz
		reason                      pgtype.Text
		createdAt, updatedAt        time.Time
	)
	if err := row.Scan(&id, &resourceID, &requesterID, &date, &start, &end,
		&purpose, &partySize, &notes, &status, &cost, &approverID, &approvedAt, &reason, &version,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	bookingDate, err := pgconv.DateFromPgtype(date)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s booking_date", id)
	}
	startTime, err := pgconv.TimeOfDayFromPgtype(start)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s start_time", id)
	}
	endTime, err := pgconv.TimeOfDayFromPgtype(end)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s end_time", id)
	}
	slot, err := calendar.NewTimeSlot(startTime, endTime)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s slot", id)
	}
	p, err := reservation.NewPurpose(purpose)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s purpose", id)
	}
	party, err := reservation.NewPartySize(int(partySize))
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s party_size", id)
	}
	amount, err := pgconv.DecimalFromNumeric(cost)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s cost", id)
	}
	var reasonPtr *string
	if reason.Valid {
		reasonPtr = &reason.String
	}

	return reservation.ReconstructReservation(
		id, resourceID, requesterID,
		bookingDate, slot, p, party, reservation.NewNote(notes),
		reservation.Status(status), amount,
		pgconv.UUIDPtrFromPgtype(approverID), pgconv.TimePtrFromPgtype(approvedAt), reasonPtr,
		int(version), createdAt, updatedAt,
	), nil
}
