//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/handler/api"
	reqdto "condo-reservations/internal/handler/dto/request"
	resdto "condo-reservations/internal/handler/dto/response"
	"condo-reservations/internal/handler/middleware"
	"condo-reservations/internal/infra/lock"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/commands"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/tests/common/builder"
	"condo-reservations/tests/common/httptest"
	"condo-reservations/tests/common/testutil"
	commandsmock "condo-reservations/tests/mock/commands"
	queriesmock "condo-reservations/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockWorkflow *commandsmock.MockWorkflowCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	actor        user.Actor
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(reqdto.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockWorkflow = commandsmock.NewMockWorkflowCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockWorkflow, s.mockQueries)
	s.actor = builder.NewResident()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActor(c, s.actor)
		c.Next()
	}

	g := s.router.Group("/reservations", authMiddleware)
	g.POST("", s.handler.Create)
	g.GET("", s.handler.List)
	g.GET("/upcoming", s.handler.Upcoming)
	g.GET("/stats", s.handler.Stats)
	g.GET("/:id", s.handler.Get)
	g.PUT("/:id", s.handler.Reschedule)
	g.POST("/:id/approve", s.handler.Approve)
	g.POST("/:id/reject", s.handler.Reject)
	g.POST("/:id/cancel", s.handler.Cancel)
	g.POST("/:id/complete", s.handler.Complete)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail map[string]string `json:"detail"`
}

func (s *ReservationHandlerTestSuite) decodeError(body []byte) errorBody {
	var out errorBody
	s.Require().NoError(json.Unmarshal(body, &out))
	return out
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	bound := []testCaseReservation{
		{name: "party_size boundary OK (1)", mutate: testutil.Field("party_size", 1), expectCode: http.StatusCreated},
		{name: "party_size boundary invalid (0)", mutate: testutil.Field("party_size", 0), expectCode: http.StatusBadRequest},
		{name: "purpose length OK (200 chars)", mutate: testutil.Field("purpose", strings.Repeat("a", 200)), expectCode: http.StatusCreated},
		{name: "purpose length invalid (201 chars)", mutate: testutil.Field("purpose", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
		{name: "end_time 24:00 OK", mutate: testutil.Field("end_time", "24:00"), expectCode: http.StatusCreated},
	}

	format := []testCaseReservation{
		{name: "date not ISO", mutate: testutil.Field("date", "04/03/2026"), expectCode: http.StatusBadRequest},
		{name: "start_time out of range", mutate: testutil.Field("start_time", "25:00"), expectCode: http.StatusBadRequest},
		{name: "end_time without minutes", mutate: testutil.Field("end_time", "12"), expectCode: http.StatusBadRequest},
		{name: "end before start", mutate: testutil.Field("end_time", "09:00"), expectCode: http.StatusBadRequest},
		{name: "end equals start", mutate: testutil.Field("end_time", "10:00"), expectCode: http.StatusBadRequest},
		{name: "resource_id not a uuid", mutate: testutil.Field("resource_id", "salon"), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseReservation{
		{name: "missing field: resource_id", mutate: testutil.Field("resource_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: date", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start_time", mutate: testutil.Field("start_time", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: end_time", mutate: testutil.Field("end_time", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: purpose", mutate: testutil.Field("purpose", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: party_size", mutate: testutil.Field("party_size", nil), expectCode: http.StatusBadRequest},
		{name: "optional field: notes", mutate: testutil.Field("notes", nil), expectCode: http.StatusCreated},
	}

	allValidationTestCases := [][]testCaseReservation{bound, format, missing}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.actor, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, in commands.CreateReservationInput) (*queries.ReservationView, error) {
				s.Equal(b.ResourceID, in.ResourceID)
				s.Equal("2026-03-04", in.Date.String())
				s.Equal("10:00-12:00", in.Slot.String())
				s.Equal(b.PartySize, in.PartySize)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal("pending", body.Status)
		s.Equal("100.00", body.Cost)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/reservations/" + returnView.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, group := range allValidationTestCases {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.JSONMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
							Return(returnView, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps command errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "resource closed on that weekday",
				commandsError:  resource.ErrDayNotAllowed,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "closed on that weekday",
			},
			{
				name:           "party exceeds capacity",
				commandsError:  errs.Wrapf(resource.ErrCapacityExceeded, "%d > %d", 50, 40),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "exceeds resource capacity",
			},
			{
				name:           "date in the past",
				commandsError:  reservation.ErrDateInPast,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "in the past",
			},
			{
				name:           "resource not found",
				commandsError:  errs.Wrapf(resource.ErrResourceNotFound, "id %s", b.ResourceID),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "resource not found",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 409 Conflict carries the conflicting reservation", func() {
		conflicting := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &reservation.ConflictError{ConflictingID: conflicting}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusConflict, rec.Code)
		body := s.decodeError(rec.Body.Bytes())
		s.Equal(conflicting.String(), body.Detail["conflicting_id"])
	})

	s.Run("error: 503 with Retry-After when the slot lock times out", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, lock.ErrLockTimeout).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "timed out")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "1"})
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().AsConfirmed().BuildView()
	view.History = []queries.TransitionView{
		{Action: "create", To: "pending", ActorID: view.RequesterID, At: builder.BaseTime},
	}
	url := "/reservations/" + view.ID.String()

	s.Run("success: returns the reservation with its history", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
		s.Require().Len(body.History, 1)
		s.Equal("create", body.History[0].Action)
		s.NotNil(body.ApproverID)
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 403 for someone else's reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).
			Return(nil, reservation.ErrNotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).
			Return(nil, reservation.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "reservation not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	resourceID := uuid.New()
	views := []*queries.ReservationView{
		builder.NewReservationBuilder().WithResourceID(resourceID).BuildView(),
		builder.NewReservationBuilder().WithResourceID(resourceID).WithSlot("14:00", "16:00").BuildView(),
	}

	s.Run("success: passes filters and returns the next cursor", func() {
		url := "/reservations?resource_id=" + resourceID.String() +
			"&status=pending&from=2026-03-01&to=2026-03-31&limit=2&after=abc"
		s.mockQueries.EXPECT().List(gomock.Any(), s.actor, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, f queries.ReservationFilter, after *queries.Cursor) ([]*queries.ReservationView, *queries.Cursor, error) {
				s.Require().NotNil(f.ResourceID)
				s.Equal(resourceID, *f.ResourceID)
				s.Require().NotNil(f.Status)
				s.Equal("pending", *f.Status)
				s.Equal("2026-03-01", f.From.String())
				s.Equal("2026-03-31", f.To.String())
				s.Equal(2, f.Limit)
				s.Equal("abc", after.After)
				return views, &queries.Cursor{After: "next"}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Equal("next", body.NextCursor)
	})

	s.Run("success: empty result is an empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), nil).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"items":[]}`, rec.Body.String())
	})

	s.Run("error: 400 for invalid filters", func() {
		for _, q := range []string{"resource_id=x", "requester_id=x", "from=2026-13-01", "to=yesterday"} {
			s.Run(q, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?"+q, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 for an inverted range", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?from=2026-03-31&to=2026-03-01", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "before its start")
	})
}

// ================================================================================
// TestUpcoming / TestStats
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpcoming() {
	s.Run("success: forwards the limit", func() {
		views := []*queries.ReservationView{builder.NewReservationBuilder().BuildView()}
		s.mockQueries.EXPECT().Upcoming(gomock.Any(), s.actor, 3).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/upcoming?limit=3", nil, "bearer-token")

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Empty(body.NextCursor)
	})
}

func (s *ReservationHandlerTestSuite) TestStats() {
	s.actor = builder.NewAdministrator()

	s.Run("success: revenue is rendered with two decimals", func() {
		stats := &queries.StatsView{
			Total:    3,
			ByStatus: map[string]int64{"confirmed": 2, "cancelled": 1},
			Revenue:  decimal.RequireFromString("250"),
			Monthly:  []queries.MonthlyCount{{Month: "2026-03", Bookings: 3}},
		}
		s.mockQueries.EXPECT().Stats(gomock.Any(), s.actor, gomock.Any(), 5).Return(stats, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/stats?top=5", nil, "bearer-token")

		var body resdto.StatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("250.00", body.Revenue)
		s.Equal(int64(2), body.ByStatus["confirmed"])
		s.Empty(body.TopResources)
		s.Len(body.Monthly, 1)
	})

	s.Run("error: 403 for residents", func() {
		s.mockQueries.EXPECT().Stats(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrAdministratorOnly).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/stats", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "administrator")
	})
}

// ================================================================================
// TestReschedule
// ================================================================================

func (s *ReservationHandlerTestSuite) TestReschedule() {
	b := builder.NewReservationBuilder().WithSlot("14:00", "17:00").WithCost("150.00")
	url := "/reservations/" + b.ID.String()
	reqBody := b.BuildRescheduleRequestDTO()

	s.Run("success: returns the recomputed cost", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), s.actor, b.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, _ uuid.UUID, in commands.RescheduleInput) (*queries.ReservationView, error) {
				s.Equal("14:00-17:00", in.Slot.String())
				return b.BuildView(), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("150.00", body.Cost)
		s.Equal("14:00", body.StartTime)
	})

	s.Run("error: 400 on a malformed schedule", func() {
		requestMap := testutil.JSONMap(s.T(), reqBody, testutil.Field("start_time", "7pm"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 when the reservation is no longer pending", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any(), b.ID, gomock.Any()).
			Return(nil, reservation.ErrNotReschedulable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "only pending")
	})
}

// ================================================================================
// TestWorkflow
// ================================================================================

func (s *ReservationHandlerTestSuite) TestWorkflow() {
	b := builder.NewReservationBuilder()
	id := b.ID
	base := "/reservations/" + id.String()

	s.Run("approve: 200 with the confirmed reservation", func() {
		s.actor = builder.NewAdministrator()
		confirmed := builder.NewReservationBuilder().WithID(id).AsConfirmed().BuildView()
		s.mockWorkflow.EXPECT().Approve(gomock.Any(), s.actor, id).Return(confirmed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/approve", nil, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("approve: 409 with from/to detail on an invalid transition", func() {
		s.mockWorkflow.EXPECT().Approve(gomock.Any(), gomock.Any(), id).
			Return(nil, &reservation.TransitionError{
				From:   reservation.StatusCancelled,
				To:     reservation.StatusConfirmed,
				Action: reservation.ActionApprove,
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/approve", nil, "bearer-token")

		s.Equal(http.StatusConflict, rec.Code)
		body := s.decodeError(rec.Body.Bytes())
		s.Equal("cancelled", body.Detail["from"])
		s.Equal("confirmed", body.Detail["to"])
	})

	s.Run("reject: forwards the reason", func() {
		reason := "Pool closed for cleaning"
		rejected := b.With(func(r *builder.ReservationBuilder) {
			r.Status = reservation.StatusRejected
			r.Reason = &reason
		}).BuildView()
		s.mockWorkflow.EXPECT().Reject(gomock.Any(), gomock.Any(), id, reason).Return(rejected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/reject",
			reqdto.ReasonRequest{Reason: reason}, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("rejected", body.Status)
		s.Require().NotNil(body.Reason)
		s.Equal(reason, *body.Reason)
	})

	s.Run("reject: 400 without a reason", func() {
		s.mockWorkflow.EXPECT().Reject(gomock.Any(), gomock.Any(), id, "").
			Return(nil, reservation.ErrRejectionReasonRequired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/reject", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "reason is required")
	})

	s.Run("reject: 400 when the reason is too long", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/reject",
			reqdto.ReasonRequest{Reason: strings.Repeat("x", 501)}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("cancel: body is optional", func() {
		s.actor = builder.NewResident()
		cancelled := builder.NewReservationBuilder().WithID(id).WithStatus(reservation.StatusCancelled).BuildView()
		s.mockWorkflow.EXPECT().Cancel(gomock.Any(), s.actor, id, "").Return(cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel", nil, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
	})

	s.Run("cancel: 403 for someone else's reservation", func() {
		s.mockWorkflow.EXPECT().Cancel(gomock.Any(), gomock.Any(), id, "changed plans").
			Return(nil, reservation.ErrNotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel",
			reqdto.ReasonRequest{Reason: "changed plans"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "requester or an administrator")
	})

	s.Run("complete: 409 before the slot has ended", func() {
		s.actor = builder.NewAdministrator()
		s.mockWorkflow.EXPECT().Complete(gomock.Any(), s.actor, id).
			Return(nil, reservation.ErrNotYetFinished).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/complete", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not ended")
	})

	s.Run("error: 401 without a token on every transition", func() {
		for _, action := range []string{"approve", "reject", "cancel", "complete"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/"+action, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
		}
	})
}
