package resource

import (
	"slices"
	"time"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rules are the administrator-maintained booking rules of a resource.
type Rules struct {
	Name             string
	Description      string
	HourlyRate       decimal.Decimal
	Status           Status
	Capacity         int
	OpeningTime      calendar.TimeOfDay
	ClosingTime      calendar.TimeOfDay
	AllowedWeekdays  []int
	MinDurationHours int
	MaxDurationHours int
	MinAdvanceHours  int
	MaxAdvanceHours  int
}

// DefaultRules returns rules with the catalog defaults for everything but name and rate.
func DefaultRules(name string, hourlyRate decimal.Decimal) Rules {
	return Rules{
		Name:             name,
		HourlyRate:       hourlyRate,
		Status:           StatusActive,
		Capacity:         DefaultCapacity,
		OpeningTime:      calendar.MustTimeOfDay(DefaultOpeningTime),
		ClosingTime:      calendar.MustTimeOfDay(DefaultClosingTime),
		AllowedWeekdays:  WeekdayInts(AllWeekdays()),
		MinDurationHours: DefaultMinDurationHours,
		MaxDurationHours: DefaultMaxDurationHours,
		MinAdvanceHours:  DefaultMinAdvanceHours,
		MaxAdvanceHours:  DefaultMaxAdvanceHours,
	}
}

type Resource struct {
	id               uuid.UUID
	name             string
	description      string
	hourlyRate       decimal.Decimal
	status           Status
	capacity         int
	openingTime      calendar.TimeOfDay
	closingTime      calendar.TimeOfDay
	allowedWeekdays  []calendar.Weekday
	minDurationHours int
	maxDurationHours int
	minAdvanceHours  int
	maxAdvanceHours  int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewResource(id uuid.UUID, rules Rules, now time.Time) (*Resource, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	r := &Resource{id: id, createdAt: now}
	if err := r.apply(rules, now); err != nil {
		return nil, err
	}
	return r, nil
}

// Reconstruct rebuilds a stored resource without re-running validation.
func Reconstruct(
	id uuid.UUID,
	name, description string,
	hourlyRate decimal.Decimal,
	status Status,
	capacity int,
	openingTime, closingTime calendar.TimeOfDay,
	allowedWeekdays []calendar.Weekday,
	minDurationHours, maxDurationHours int,
	minAdvanceHours, maxAdvanceHours int,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:               id,
		name:             name,
		description:      description,
		hourlyRate:       hourlyRate,
		status:           status,
		capacity:         capacity,
		openingTime:      openingTime,
		closingTime:      closingTime,
		allowedWeekdays:  slices.Clone(allowedWeekdays),
		minDurationHours: minDurationHours,
		maxDurationHours: maxDurationHours,
		minAdvanceHours:  minAdvanceHours,
		maxAdvanceHours:  maxAdvanceHours,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Update returns a copy carrying the new rules. Stored booking costs are unaffected.
func (r *Resource) Update(rules Rules, now time.Time) (*Resource, error) {
	next := *r
	if err := next.apply(rules, now); err != nil {
		return nil, err
	}
	return &next, nil
}

// Deactivate returns an inactive copy. Resources are never hard-deleted.
func (r *Resource) Deactivate(now time.Time) *Resource {
	next := *r
	next.allowedWeekdays = slices.Clone(r.allowedWeekdays)
	next.status = StatusInactive
	next.updatedAt = now
	return &next
}

func (r *Resource) apply(rules Rules, now time.Time) error {
	name, err := validateName(rules.Name)
	if err != nil {
		return err
	}
	rate, err := NormalizeRate(rules.HourlyRate)
	if err != nil {
		return err
	}
	status := rules.Status
	if status == "" {
		status = StatusActive
	}
	if !status.IsValid() {
		return errs.Wrapf(ErrInvalidStatus, "%q", status)
	}
	if rules.Capacity < 1 {
		return ErrInvalidCapacity
	}
	if !rules.OpeningTime.Before(rules.ClosingTime) {
		return ErrInvalidOpeningHours
	}
	if rules.MinDurationHours <= 0 || rules.MinDurationHours > rules.MaxDurationHours {
		return ErrInvalidDurationRange
	}
	if rules.MinAdvanceHours < 0 || rules.MinAdvanceHours > rules.MaxAdvanceHours {
		return ErrInvalidAdvanceWindow
	}
	days, err := NormalizeWeekdays(rules.AllowedWeekdays)
	if err != nil {
		return err
	}

	r.name = name
	r.description = rules.Description
	r.hourlyRate = rate
	r.status = status
	r.capacity = rules.Capacity
	r.openingTime = rules.OpeningTime
	r.closingTime = rules.ClosingTime
	r.allowedWeekdays = days
	r.minDurationHours = rules.MinDurationHours
	r.maxDurationHours = rules.MaxDurationHours
	r.minAdvanceHours = rules.MinAdvanceHours
	r.maxAdvanceHours = rules.MaxAdvanceHours
	r.updatedAt = now
	return nil
}

// IsBookableOn checks the catalog rules for a slot on a date, in order:
// status, weekday, operating hours, duration.
func (r *Resource) IsBookableOn(date calendar.Date, slot calendar.TimeSlot) error {
	if !r.IsActive() {
		return ErrResourceInactive
	}
	if !r.IsOpenOn(date.Weekday()) {
		return errs.Wrapf(ErrDayNotAllowed, "%s", date)
	}
	if !slot.Within(r.openingTime, r.closingTime) {
		return errs.Wrapf(ErrOutsideOperatingHours, "%s not within %s-%s", slot, r.openingTime, r.closingTime)
	}
	minutes := slot.Minutes()
	if minutes < r.minDurationHours*60 || minutes > r.maxDurationHours*60 {
		return errs.Wrapf(ErrDurationOutOfRange, "%d minutes, allowed %d-%d hours",
			minutes, r.minDurationHours, r.maxDurationHours)
	}
	return nil
}

// CheckLeadTime checks the advance notice window for a booking starting at startAt.
func (r *Resource) CheckLeadTime(startAt, now time.Time) error {
	ahead := startAt.Sub(now)
	if ahead < time.Duration(r.minAdvanceHours)*time.Hour {
		return errs.Wrapf(ErrLeadTimeNotMet, "at least %d hours required", r.minAdvanceHours)
	}
	if ahead > time.Duration(r.maxAdvanceHours)*time.Hour {
		return errs.Wrapf(ErrBeyondAdvanceWindow, "at most %d hours allowed", r.maxAdvanceHours)
	}
	return nil
}

func (r *Resource) CheckCapacity(people int) error {
	if people > r.capacity {
		return errs.Wrapf(ErrCapacityExceeded, "%d people, capacity %d", people, r.capacity)
	}
	return nil
}

func (r *Resource) IsActive() bool {
	return r.status == StatusActive
}

func (r *Resource) IsOpenOn(day calendar.Weekday) bool {
	return slices.Contains(r.allowedWeekdays, day)
}

func (r *Resource) ID() uuid.UUID                       { return r.id }
func (r *Resource) Name() string                        { return r.name }
func (r *Resource) Description() string                 { return r.description }
func (r *Resource) HourlyRate() decimal.Decimal         { return r.hourlyRate }
func (r *Resource) Status() Status                      { return r.status }
func (r *Resource) Capacity() int                       { return r.capacity }
func (r *Resource) OpeningTime() calendar.TimeOfDay     { return r.openingTime }
func (r *Resource) ClosingTime() calendar.TimeOfDay     { return r.closingTime }
func (r *Resource) AllowedWeekdays() []calendar.Weekday { return slices.Clone(r.allowedWeekdays) }
func (r *Resource) MinDurationHours() int               { return r.minDurationHours }
func (r *Resource) MaxDurationHours() int               { return r.maxDurationHours }
func (r *Resource) MinAdvanceHours() int                { return r.minAdvanceHours }
func (r *Resource) MaxAdvanceHours() int                { return r.maxAdvanceHours }
func (r *Resource) CreatedAt() time.Time                { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time                { return r.updatedAt }
