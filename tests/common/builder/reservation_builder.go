//go:build unit || e2e

package builder

import (
	"time"

	"condo-reservations/internal/domain/calendar"
	domreservation "condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/user"
	reqdto "condo-reservations/internal/handler/dto/request"
	"condo-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseTime is Monday 2026-03-02 09:00 UTC, the "now" of builder-made fixtures.
var BaseTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

// BaseDate is two days after BaseTime, inside the default advance window.
var BaseDate = calendar.NewDate(2026, time.March, 4)

type ReservationBuilder struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	Date        calendar.Date
	Start       string
	End         string
	Purpose     string
	PartySize   int
	Notes       string
	Status      domreservation.Status
	Cost        decimal.Decimal
	ApproverID  *uuid.UUID
	ApprovedAt  *time.Time
	Reason      *string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:          uuid.New(),
		ResourceID:  uuid.New(),
		RequesterID: uuid.New(),
		Date:        BaseDate,
		Start:       "10:00",
		End:         "12:00",
		Purpose:     "Birthday party",
		PartySize:   10,
		Status:      domreservation.StatusPending,
		Cost:        decimal.RequireFromString("100.00"),
		Version:     1,
		CreatedAt:   BaseTime,
		UpdatedAt:   BaseTime,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildDomain() *domreservation.Reservation {
	slot, err := calendar.ParseTimeSlot(r.Start, r.End)
	if err != nil {
		panic(err)
	}
	purpose, err := domreservation.NewPurpose(r.Purpose)
	if err != nil {
		panic(err)
	}
	party, err := domreservation.NewPartySize(r.PartySize)
	if err != nil {
		panic(err)
	}
	return domreservation.ReconstructReservation(
		r.ID, r.ResourceID, r.RequesterID,
		r.Date, slot, purpose, party, domreservation.NewNote(r.Notes),
		r.Status, r.Cost, r.ApproverID, r.ApprovedAt, r.Reason, r.Version,
		r.CreatedAt, r.UpdatedAt,
	)
}

func (r *ReservationBuilder) BuildRequest() domreservation.Request {
	slot, err := calendar.ParseTimeSlot(r.Start, r.End)
	if err != nil {
		panic(err)
	}
	return domreservation.Request{
		Date:      r.Date,
		Slot:      slot,
		Purpose:   r.Purpose,
		PartySize: r.PartySize,
		Notes:     r.Notes,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:           r.ID,
		ResourceID:   r.ResourceID,
		ResourceName: "Salón de eventos",
		RequesterID:  r.RequesterID,
		Date:         r.Date.String(),
		StartTime:    r.Start,
		EndTime:      r.End,
		Purpose:      r.Purpose,
		PartySize:    r.PartySize,
		Notes:        r.Notes,
		Status:       r.Status.String(),
		Cost:         r.Cost,
		ApproverID:   r.ApproverID,
		ApprovedAt:   r.ApprovedAt,
		Reason:       r.Reason,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID: r.ResourceID,
		Date:       r.Date.String(),
		StartTime:  r.Start,
		EndTime:    r.End,
		Purpose:    r.Purpose,
		PartySize:  r.PartySize,
		Notes:      r.Notes,
	}
}

func (r *ReservationBuilder) BuildRescheduleRequestDTO() reqdto.RescheduleRequest {
	return reqdto.RescheduleRequest{
		Date:      r.Date.String(),
		StartTime: r.Start,
		EndTime:   r.End,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	r.ID = id
	return r
}

func (r *ReservationBuilder) WithResourceID(id uuid.UUID) *ReservationBuilder {
	r.ResourceID = id
	return r
}

func (r *ReservationBuilder) WithRequesterID(id uuid.UUID) *ReservationBuilder {
	r.RequesterID = id
	return r
}

func (r *ReservationBuilder) WithDate(date calendar.Date) *ReservationBuilder {
	r.Date = date
	return r
}

func (r *ReservationBuilder) WithSlot(start, end string) *ReservationBuilder {
	r.Start = start
	r.End = end
	return r
}

func (r *ReservationBuilder) WithPurpose(purpose string) *ReservationBuilder {
	r.Purpose = purpose
	return r
}

func (r *ReservationBuilder) WithPartySize(n int) *ReservationBuilder {
	r.PartySize = n
	return r
}

func (r *ReservationBuilder) WithStatus(status domreservation.Status) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) WithCost(cost string) *ReservationBuilder {
	r.Cost = decimal.RequireFromString(cost)
	return r
}

func (r *ReservationBuilder) WithCreatedAt(createdAt time.Time) *ReservationBuilder {
	r.CreatedAt = createdAt
	r.UpdatedAt = createdAt
	return r
}

func (r *ReservationBuilder) AsConfirmed() *ReservationBuilder {
	approver := uuid.New()
	at := r.CreatedAt.Add(time.Hour)
	r.Status = domreservation.StatusConfirmed
	r.ApproverID = &approver
	r.ApprovedAt = &at
	r.Version = 2
	return r
}

func NewResident() user.Actor {
	return NewActor(uuid.New(), user.RoleResident)
}

func NewAdministrator() user.Actor {
	return NewActor(uuid.New(), user.RoleAdministrator)
}

func NewActor(id uuid.UUID, role user.Role) user.Actor {
	a, err := user.NewActor(id, role)
	if err != nil {
		panic(err)
	}
	return a
}
