package readstore

import (
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/pgconv"
	"condo-reservations/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationViewColumns = `r.id, r.resource_id, s.name, r.requester_id, r.booking_date, r.start_time, r.end_time,
	r.purpose, r.party_size, r.notes, r.status, r.cost, r.approver_id, r.approved_at, r.reason,
	r.created_at, r.updated_at`

const reservationViewFrom = `FROM reservations r JOIN resources s ON s.id = r.resource_id`

const resourceViewColumns = `id, name, description, hourly_rate, status, capacity,
	opening_time, closing_time, allowed_weekdays,
	min_duration_hours, max_duration_hours, min_advance_hours, max_advance_hours,
	created_at, updated_at`

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		v          queries.ReservationView
		date       pgtype.Date
		start, end pgtype.Time
		partySize  int32
		cost       pgtype.Numeric
		approverID pgtype.UUID
		approvedAt pgtype.Timestamptz
		reason     pgtype.Text
	)
	if err := row.Scan(&v.ID, &v.ResourceID, &v.ResourceName, &v.RequesterID, &date, &start, &end,
		&v.Purpose, &partySize, &v.Notes, &v.Status, &cost, &approverID, &approvedAt, &reason,
		&v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}

	d, err := pgconv.DateFromPgtype(date)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s booking_date", v.ID)
	}
	startTime, err := pgconv.TimeOfDayFromPgtype(start)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s start_time", v.ID)
	}
	endTime, err := pgconv.TimeOfDayFromPgtype(end)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s end_time", v.ID)
	}
	amount, err := pgconv.DecimalFromNumeric(cost)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s cost", v.ID)
	}

	v.Date = d.String()
	v.StartTime = startTime.String()
	v.EndTime = endTime.String()
	v.PartySize = int(partySize)
	v.Cost = amount
	v.ApproverID = pgconv.UUIDPtrFromPgtype(approverID)
	v.ApprovedAt = pgconv.TimePtrFromPgtype(approvedAt)
	if reason.Valid {
		v.Reason = &reason.String
	}
	return &v, nil
}

func scanResourceView(row pgx.Row) (*queries.ResourceView, error) {
	var (
		v                queries.ResourceView
		rate             pgtype.Numeric
		capacity         int32
		opening, closing pgtype.Time
		weekdays         []int16
		minDur, maxDur   int32
		minAdv, maxAdv   int32
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Description, &rate, &v.Status, &capacity,
		&opening, &closing, &weekdays,
		&minDur, &maxDur, &minAdv, &maxAdv,
		&v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}

	hourlyRate, err := pgconv.DecimalFromNumeric(rate)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s hourly_rate", v.ID)
	}
	openingTime, err := pgconv.TimeOfDayFromPgtype(opening)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s opening_time", v.ID)
	}
	closingTime, err := pgconv.TimeOfDayFromPgtype(closing)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s closing_time", v.ID)
	}

	v.HourlyRate = hourlyRate
	v.Capacity = int(capacity)
	v.OpeningTime = openingTime.String()
	v.ClosingTime = closingTime.String()
	v.AllowedWeekdays = make([]int, len(weekdays))
	for i, d := range weekdays {
		v.AllowedWeekdays[i] = int(d)
	}
	v.MinDurationHours = int(minDur)
	v.MaxDurationHours = int(maxDur)
	v.MinAdvanceHours = int(minAdv)
	v.MaxAdvanceHours = int(maxAdv)
	return &v, nil
}
