package request

import (
	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	Date       string    `json:"date" binding:"required,isodate"`
	StartTime  string    `json:"start_time" binding:"required,hhmm"`
	EndTime    string    `json:"end_time" binding:"required,hhmm"`
	Purpose    string    `json:"purpose" binding:"required,max=200"`
	PartySize  int       `json:"party_size" binding:"required,min=1"`
	Notes      string    `json:"notes" binding:"max=2000"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	date, slot, err := parseSchedule(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		ResourceID: r.ResourceID,
		Request: reservation.Request{
			Date:      date,
			Slot:      slot,
			Purpose:   r.Purpose,
			PartySize: r.PartySize,
			Notes:     r.Notes,
		},
	}, nil
}

type RescheduleRequest struct {
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

func (r RescheduleRequest) ToInput() (commands.RescheduleInput, error) {
	date, slot, err := parseSchedule(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return commands.RescheduleInput{}, err
	}
	return commands.RescheduleInput{Date: date, Slot: slot}, nil
}

// ReasonRequest is the optional body of reject and cancel. Reject additionally
// requires a non-blank reason, which the domain enforces.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// parseSchedule rejects end <= start with the domain's validation error.
func parseSchedule(date, start, end string) (calendar.Date, calendar.TimeSlot, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return calendar.Date{}, calendar.TimeSlot{}, err
	}
	slot, err := calendar.ParseTimeSlot(start, end)
	if err != nil {
		return calendar.Date{}, calendar.TimeSlot{}, err
	}
	return d, slot, nil
}
