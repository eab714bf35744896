package resource

import "condo-reservations/internal/pkg/errs"

var (
	ErrEmptyResourceName    = errs.NewIn(errs.ErrValidation, "resource name cannot be empty")
	ErrResourceNameTooLong  = errs.NewIn(errs.ErrValidation, "resource name is too long (max 120 characters)")
	ErrNegativeHourlyRate   = errs.NewIn(errs.ErrValidation, "hourly rate cannot be negative")
	ErrInvalidStatus        = errs.NewIn(errs.ErrValidation, "invalid resource status")
	ErrInvalidCapacity      = errs.NewIn(errs.ErrValidation, "capacity must be at least 1")
	ErrInvalidOpeningHours  = errs.NewIn(errs.ErrValidation, "opening time must be before closing time")
	ErrInvalidDurationRange = errs.NewIn(errs.ErrValidation, "duration bounds must satisfy 0 < min <= max")
	ErrInvalidAdvanceWindow = errs.NewIn(errs.ErrValidation, "advance bounds must satisfy 0 <= min <= max")
	ErrNoAllowedWeekdays    = errs.NewIn(errs.ErrValidation, "at least one weekday must be allowed")

	ErrResourceInactive      = errs.NewIn(errs.ErrResourceUnavailable, "resource is not active")
	ErrDayNotAllowed         = errs.NewIn(errs.ErrResourceUnavailable, "resource is closed on that weekday")
	ErrOutsideOperatingHours = errs.NewIn(errs.ErrResourceUnavailable, "requested time is outside operating hours")
	ErrDurationOutOfRange    = errs.NewIn(errs.ErrResourceUnavailable, "requested duration is out of range")
	ErrLeadTimeNotMet        = errs.NewIn(errs.ErrResourceUnavailable, "minimum advance notice not met")
	ErrBeyondAdvanceWindow   = errs.NewIn(errs.ErrResourceUnavailable, "requested date is beyond the advance booking window")
	ErrCapacityExceeded      = errs.NewIn(errs.ErrResourceUnavailable, "party size exceeds resource capacity")

	ErrResourceNotFound  = errs.NewIn(errs.ErrNotFound, "resource not found")
	ErrAdministratorOnly = errs.NewIn(errs.ErrPermissionDenied, "only an administrator may manage resources")
	ErrDuplicateName     = errs.NewIn(errs.ErrValidation, "a resource with that name already exists")
)

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusMaintenance:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.Wrapf(ErrInvalidStatus, "%q", s)
	}
	return st, nil
}
