package response

import (
	"time"

	"condo-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID           uuid.UUID            `json:"id"`
	ResourceID   uuid.UUID            `json:"resource_id"`
	ResourceName string               `json:"resource_name"`
	RequesterID  uuid.UUID            `json:"requester_id"`
	Date         string               `json:"date"`
	StartTime    string               `json:"start_time"`
	EndTime      string               `json:"end_time"`
	Purpose      string               `json:"purpose"`
	PartySize    int                  `json:"party_size"`
	Notes        string               `json:"notes,omitempty"`
	Status       string               `json:"status"`
	Cost         string               `json:"cost"`
	ApproverID   *uuid.UUID           `json:"approver_id,omitempty"`
	ApprovedAt   *time.Time           `json:"approved_at,omitempty"`
	Reason       *string              `json:"reason,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	History      []TransitionResponse `json:"history,omitempty"`
}

type TransitionResponse struct {
	Action  string    `json:"action"`
	From    string    `json:"from,omitempty"`
	To      string    `json:"to"`
	ActorID uuid.UUID `json:"actor_id"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

type ReservationListResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

type ResourceUsageResponse struct {
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	Bookings     int64     `json:"bookings"`
}

type MonthlyCountResponse struct {
	Month    string `json:"month"`
	Bookings int64  `json:"bookings"`
}

type StatsResponse struct {
	Total        int64                   `json:"total"`
	ByStatus     map[string]int64        `json:"by_status"`
	Revenue      string                  `json:"revenue"`
	TopResources []ResourceUsageResponse `json:"top_resources"`
	Monthly      []MonthlyCountResponse  `json:"monthly"`
}

func FromReservationView(view *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copyView(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromReservationViews(views []*queries.ReservationView, next *queries.Cursor) (*ReservationListResponse, error) {
	resp := &ReservationListResponse{Items: make([]*ReservationResponse, 0, len(views))}
	for _, v := range views {
		item, err := FromReservationView(v)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, item)
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp, nil
}

func FromStatsView(view *queries.StatsView) (*StatsResponse, error) {
	var resp StatsResponse
	if err := copyView(&resp, view); err != nil {
		return nil, err
	}
	if resp.TopResources == nil {
		resp.TopResources = []ResourceUsageResponse{}
	}
	if resp.Monthly == nil {
		resp.Monthly = []MonthlyCountResponse{}
	}
	return &resp, nil
}
