package httperr

import (
	"net/http"
	"strconv"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// RetryAfterSeconds is advertised when a slot lock or the database is contended.
const RetryAfterSeconds = 1

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps err to its transport status through its category.
// Errors outside the taxonomy are reported as 500 without their text.
func Abort(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}
	AbortWithError(c, status, err, msg, detailFor(err))
}

func StatusFor(err error) int {
	switch errs.Category(err) {
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrResourceUnavailable:
		return http.StatusUnprocessableEntity
	case errs.ErrSlotConflict, errs.ErrInvalidStateTransition:
		return http.StatusConflict
	case errs.ErrPermissionDenied:
		return http.StatusForbidden
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrStorageContention:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func detailFor(err error) any {
	var conflict *reservation.ConflictError
	if errs.As(err, &conflict) {
		return gin.H{"conflicting_id": conflict.ConflictingID}
	}
	var transition *reservation.TransitionError
	if errs.As(err, &transition) {
		return gin.H{"from": transition.From, "to": transition.To}
	}
	return nil
}
