package request

import (
	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

// ResourceRequest creates or replaces a resource. Omitted rules take the catalog defaults.
type ResourceRequest struct {
	Name             string          `json:"name" binding:"required,max=120"`
	Description      string          `json:"description" binding:"max=2000"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	Status           string          `json:"status" binding:"omitempty,oneof=active inactive maintenance"`
	Capacity         *int            `json:"capacity" binding:"omitempty,min=1"`
	OpeningTime      string          `json:"opening_time" binding:"omitempty,hhmm"`
	ClosingTime      string          `json:"closing_time" binding:"omitempty,hhmm"`
	AllowedWeekdays  []int           `json:"allowed_weekdays" binding:"omitempty,weekdays"`
	MinDurationHours *int            `json:"min_duration_hours" binding:"omitempty,min=1"`
	MaxDurationHours *int            `json:"max_duration_hours" binding:"omitempty,min=1"`
	MinAdvanceHours  *int            `json:"min_advance_hours" binding:"omitempty,min=0"`
	MaxAdvanceHours  *int            `json:"max_advance_hours" binding:"omitempty,min=0"`
}

func (r ResourceRequest) ToRules() (resource.Rules, error) {
	rules := resource.DefaultRules(r.Name, r.HourlyRate)
	rules.Description = r.Description
	if r.Status != "" {
		status, err := resource.NewStatus(r.Status)
		if err != nil {
			return resource.Rules{}, err
		}
		rules.Status = status
	}
	if r.OpeningTime != "" {
		t, err := calendar.ParseTimeOfDay(r.OpeningTime)
		if err != nil {
			return resource.Rules{}, err
		}
		rules.OpeningTime = t
	}
	if r.ClosingTime != "" {
		t, err := calendar.ParseTimeOfDay(r.ClosingTime)
		if err != nil {
			return resource.Rules{}, err
		}
		rules.ClosingTime = t
	}
	if r.AllowedWeekdays != nil {
		rules.AllowedWeekdays = r.AllowedWeekdays
	}
	patch.Apply(&rules.Capacity, r.Capacity)
	patch.Apply(&rules.MinDurationHours, r.MinDurationHours)
	patch.Apply(&rules.MaxDurationHours, r.MaxDurationHours)
	patch.Apply(&rules.MinAdvanceHours, r.MinAdvanceHours)
	patch.Apply(&rules.MaxAdvanceHours, r.MaxAdvanceHours)
	return rules, nil
}
