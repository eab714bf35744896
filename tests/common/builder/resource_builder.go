//go:build unit || e2e

package builder

import (
	"time"

	"condo-reservations/internal/domain/calendar"
	domresource "condo-reservations/internal/domain/resource"
	reqdto "condo-reservations/internal/handler/dto/request"
	"condo-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResourceBuilder struct {
	ID    uuid.UUID
	Rules domresource.Rules
	Now   time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	rules := domresource.DefaultRules("Salón de eventos", decimal.RequireFromString("50.00"))
	rules.Description = "Ground floor party room"
	rules.Capacity = 40
	return &ResourceBuilder{
		ID:    uuid.New(),
		Rules: rules,
		Now:   BaseTime,
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ResourceBuilder) BuildDomain() (*domresource.Resource, error) {
	return domresource.NewResource(r.ID, r.Rules, r.Now)
}

func (r *ResourceBuilder) MustBuildDomain() *domresource.Resource {
	res, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return res
}

func (r *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:               r.ID,
		Name:             r.Rules.Name,
		Description:      r.Rules.Description,
		HourlyRate:       r.Rules.HourlyRate,
		Status:           r.Rules.Status.String(),
		Capacity:         r.Rules.Capacity,
		OpeningTime:      r.Rules.OpeningTime.String(),
		ClosingTime:      r.Rules.ClosingTime.String(),
		AllowedWeekdays:  r.Rules.AllowedWeekdays,
		MinDurationHours: r.Rules.MinDurationHours,
		MaxDurationHours: r.Rules.MaxDurationHours,
		MinAdvanceHours:  r.Rules.MinAdvanceHours,
		MaxAdvanceHours:  r.Rules.MaxAdvanceHours,
		CreatedAt:        r.Now,
		UpdatedAt:        r.Now,
	}
}

// BuildRequestDTO sets every rule explicitly so that ToRules round-trips to r.Rules.
func (r *ResourceBuilder) BuildRequestDTO() reqdto.ResourceRequest {
	capacity := r.Rules.Capacity
	minDur, maxDur := r.Rules.MinDurationHours, r.Rules.MaxDurationHours
	minAdv, maxAdv := r.Rules.MinAdvanceHours, r.Rules.MaxAdvanceHours
	return reqdto.ResourceRequest{
		Name:             r.Rules.Name,
		Description:      r.Rules.Description,
		HourlyRate:       r.Rules.HourlyRate,
		Status:           r.Rules.Status.String(),
		Capacity:         &capacity,
		OpeningTime:      r.Rules.OpeningTime.String(),
		ClosingTime:      r.Rules.ClosingTime.String(),
		AllowedWeekdays:  r.Rules.AllowedWeekdays,
		MinDurationHours: &minDur,
		MaxDurationHours: &maxDur,
		MinAdvanceHours:  &minAdv,
		MaxAdvanceHours:  &maxAdv,
	}
}

// Fluent builder methods
func (r *ResourceBuilder) WithID(id uuid.UUID) *ResourceBuilder {
	r.ID = id
	return r
}

func (r *ResourceBuilder) WithName(name string) *ResourceBuilder {
	r.Rules.Name = name
	return r
}

func (r *ResourceBuilder) WithHourlyRate(rate string) *ResourceBuilder {
	r.Rules.HourlyRate = decimal.RequireFromString(rate)
	return r
}

func (r *ResourceBuilder) WithStatus(status domresource.Status) *ResourceBuilder {
	r.Rules.Status = status
	return r
}

func (r *ResourceBuilder) WithCapacity(capacity int) *ResourceBuilder {
	r.Rules.Capacity = capacity
	return r
}

func (r *ResourceBuilder) WithHours(opening, closing string) *ResourceBuilder {
	r.Rules.OpeningTime = calendar.MustTimeOfDay(opening)
	r.Rules.ClosingTime = calendar.MustTimeOfDay(closing)
	return r
}

func (r *ResourceBuilder) WithWeekdays(days ...int) *ResourceBuilder {
	r.Rules.AllowedWeekdays = days
	return r
}

func (r *ResourceBuilder) WithDurationHours(minHours, maxHours int) *ResourceBuilder {
	r.Rules.MinDurationHours = minHours
	r.Rules.MaxDurationHours = maxHours
	return r
}

func (r *ResourceBuilder) WithAdvanceHours(minHours, maxHours int) *ResourceBuilder {
	r.Rules.MinAdvanceHours = minHours
	r.Rules.MaxAdvanceHours = maxHours
	return r
}

func (r *ResourceBuilder) AsInactive() *ResourceBuilder {
	r.Rules.Status = domresource.StatusInactive
	return r
}

func (r *ResourceBuilder) AsUnderMaintenance() *ResourceBuilder {
	r.Rules.Status = domresource.StatusMaintenance
	return r
}
