package queries

import (
	"time"

	"condo-reservations/internal/domain/calendar"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationView is the read model of a booking joined with its resource name.
type ReservationView struct {
	ID           uuid.UUID        `json:"id"`
	ResourceID   uuid.UUID        `json:"resource_id"`
	ResourceName string           `json:"resource_name"`
	RequesterID  uuid.UUID        `json:"requester_id"`
	Date         string           `json:"date"`
	StartTime    string           `json:"start_time"`
	EndTime      string           `json:"end_time"`
	Purpose      string           `json:"purpose"`
	PartySize    int              `json:"party_size"`
	Notes        string           `json:"notes,omitempty"`
	Status       string           `json:"status"`
	Cost         decimal.Decimal  `json:"cost"`
	ApproverID   *uuid.UUID       `json:"approver_id,omitempty"`
	ApprovedAt   *time.Time       `json:"approved_at,omitempty"`
	Reason       *string          `json:"reason,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	History      []TransitionView `json:"history,omitempty"`
}

type TransitionView struct {
	Action  string    `json:"action"`
	From    string    `json:"from,omitempty"`
	To      string    `json:"to"`
	ActorID uuid.UUID `json:"actor_id"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// ResourceView represents read-optimized resource data
type ResourceView struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	Status           string          `json:"status"`
	Capacity         int             `json:"capacity"`
	OpeningTime      string          `json:"opening_time"`
	ClosingTime      string          `json:"closing_time"`
	AllowedWeekdays  []int           `json:"allowed_weekdays"`
	MinDurationHours int             `json:"min_duration_hours"`
	MaxDurationHours int             `json:"max_duration_hours"`
	MinAdvanceHours  int             `json:"min_advance_hours"`
	MaxAdvanceHours  int             `json:"max_advance_hours"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ReservationFilter struct {
	RequesterID *uuid.UUID
	ResourceID  *uuid.UUID
	Status      *string
	// From and To bound the booking date, both inclusive.
	From *calendar.Date
	To   *calendar.Date
	// AfterCreatedAt and AfterID position the keyset cursor.
	AfterCreatedAt *time.Time
	AfterID        uuid.UUID
	Limit          int
}

type WindowView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityView struct {
	ResourceID   uuid.UUID    `json:"resource_id"`
	ResourceName string       `json:"resource_name"`
	Date         string       `json:"date"`
	Open         bool         `json:"open"`
	OpeningTime  string       `json:"opening_time"`
	ClosingTime  string       `json:"closing_time"`
	Occupied     []WindowView `json:"occupied"`
	Free         []WindowView `json:"free"`
	Available    bool         `json:"available"`
}

type StatsFilter struct {
	From *calendar.Date
	To   *calendar.Date
}

type ResourceUsage struct {
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	Bookings     int64     `json:"bookings"`
}

type MonthlyCount struct {
	Month    string `json:"month"`
	Bookings int64  `json:"bookings"`
}

type StatsView struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	Revenue      decimal.Decimal  `json:"revenue"`
	TopResources []ResourceUsage  `json:"top_resources"`
	Monthly      []MonthlyCount   `json:"monthly"`
}
