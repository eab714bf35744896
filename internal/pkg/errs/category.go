package errs

// Categories of the booking error taxonomy. Every domain error belongs to
// exactly one of them and handlers map the category to a transport status.
var (
	ErrValidation             = New("validation failed")
	ErrResourceUnavailable    = New("resource unavailable")
	ErrSlotConflict           = New("slot conflict")
	ErrInvalidStateTransition = New("invalid state transition")
	ErrPermissionDenied       = New("permission denied")
	ErrNotFound               = New("not found")
	ErrStorageContention      = New("storage contention")
)

// categorized is a leaf sentinel that also matches its category.
// cockroachdb marks are not used here: a marked error carries the mark of
// its reference, so two sentinels marked with the same category would
// compare equal to each other.
type categorized struct {
	msg      string
	category error
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Is(target error) bool {
	return target == e.category
}

// NewIn declares a sentinel that satisfies Is(err, category).
func NewIn(category error, msg string) error {
	return &categorized{msg: msg, category: category}
}

// Category returns the taxonomy category of err, or nil when err belongs to none.
func Category(err error) error {
	for _, c := range []error{
		ErrValidation,
		ErrResourceUnavailable,
		ErrSlotConflict,
		ErrInvalidStateTransition,
		ErrPermissionDenied,
		ErrNotFound,
		ErrStorageContention,
	} {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
