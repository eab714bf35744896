//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/handler/httperr"
	"condo-reservations/internal/infra/lock"
	"condo-reservations/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", reservation.ErrEmptyPurpose, http.StatusBadRequest},
		{"wrapped validation", errs.Wrap(reservation.ErrInvalidPartySize, "party"), http.StatusBadRequest},
		{"resource unavailable", resource.ErrOutsideOperatingHours, http.StatusUnprocessableEntity},
		{"slot conflict", &reservation.ConflictError{ConflictingID: uuid.New()}, http.StatusConflict},
		{"transition", &reservation.TransitionError{From: reservation.StatusRejected, To: reservation.StatusConfirmed}, http.StatusConflict},
		{"stale", reservation.ErrStaleReservation, http.StatusConflict},
		{"permission", reservation.ErrNotOwner, http.StatusForbidden},
		{"not found", resource.ErrResourceNotFound, http.StatusNotFound},
		{"lock timeout", lock.ErrLockTimeout, http.StatusServiceUnavailable},
		{"uncategorized", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httperr.StatusFor(tt.err))
		})
	}
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	perform := func(err error) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		httperr.Abort(c, err)
		return rec
	}

	t.Run("500はエラー内容を隠す", func(t *testing.T) {
		rec := perform(errors.New("pq: connection refused"))

		var body httperr.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", body.Error.Message)
	})

	t.Run("503はRetry-Afterを付ける", func(t *testing.T) {
		rec := perform(lock.ErrLockTimeout)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("衝突は相手の予約IDを返す", func(t *testing.T) {
		id := uuid.New()
		rec := perform(errs.Wrap(&reservation.ConflictError{ConflictingID: id}, "create"))

		var body struct {
			Detail map[string]string `json:"detail"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, id.String(), body.Detail["conflicting_id"])
	})

	t.Run("AbortWithErrorはnilでpanicする", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		assert.Panics(t, func() {
			httperr.AbortWithError(c, http.StatusBadRequest, nil, "x", nil)
		})
	})
}
