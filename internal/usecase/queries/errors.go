package queries

import "condo-reservations/internal/pkg/errs"

const DefaultTopResources = 5

var ErrInvalidRange = errs.NewIn(errs.ErrValidation, "date range end is before its start")
