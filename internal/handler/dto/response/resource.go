package response

import (
	"time"

	"condo-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	HourlyRate       string    `json:"hourly_rate"`
	Status           string    `json:"status"`
	Capacity         int       `json:"capacity"`
	OpeningTime      string    `json:"opening_time"`
	ClosingTime      string    `json:"closing_time"`
	AllowedWeekdays  []int     `json:"allowed_weekdays"`
	MinDurationHours int       `json:"min_duration_hours"`
	MaxDurationHours int       `json:"max_duration_hours"`
	MinAdvanceHours  int       `json:"min_advance_hours"`
	MaxAdvanceHours  int       `json:"max_advance_hours"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityResponse struct {
	ResourceID   uuid.UUID        `json:"resource_id"`
	ResourceName string           `json:"resource_name"`
	Date         string           `json:"date"`
	Open         bool             `json:"open"`
	OpeningTime  string           `json:"opening_time"`
	ClosingTime  string           `json:"closing_time"`
	Occupied     []WindowResponse `json:"occupied"`
	Free         []WindowResponse `json:"free"`
	Available    bool             `json:"available"`
}

func FromResourceView(view *queries.ResourceView) (*ResourceResponse, error) {
	var resp ResourceResponse
	if err := copyView(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromResourceViews(views []*queries.ResourceView) ([]*ResourceResponse, error) {
	out := make([]*ResourceResponse, 0, len(views))
	for _, v := range views {
		item, err := FromResourceView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// FromAvailabilityView keeps empty window lists as [] rather than null.
func FromAvailabilityView(view *queries.AvailabilityView) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := copyView(&resp, view); err != nil {
		return nil, err
	}
	if resp.Occupied == nil {
		resp.Occupied = []WindowResponse{}
	}
	if resp.Free == nil {
		resp.Free = []WindowResponse{}
	}
	return &resp, nil
}

func FromAvailabilityViews(views []*queries.AvailabilityView) ([]*AvailabilityResponse, error) {
	out := make([]*AvailabilityResponse, 0, len(views))
	for _, v := range views {
		item, err := FromAvailabilityView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
