//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/handler/api"
	reqdto "condo-reservations/internal/handler/dto/request"
	resdto "condo-reservations/internal/handler/dto/response"
	"condo-reservations/internal/handler/middleware"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/tests/common/builder"
	"condo-reservations/tests/common/httptest"
	"condo-reservations/tests/common/testutil"
	commandsmock "condo-reservations/tests/mock/commands"
	queriesmock "condo-reservations/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ResourceHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockResourceCommands
	mockQueries      *queriesmock.MockResourceQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.ResourceHandler
	actor            user.Actor
}

func (s *ResourceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(reqdto.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockResourceCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockResourceQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewResourceHandler(s.mockCommands, s.mockQueries, s.mockAvailability)
	s.actor = builder.NewAdministrator()

	authMiddleware := func(c *gin.Context) {
		middleware.SetActor(c, s.actor)
		c.Next()
	}

	s.router.GET("/resources", s.handler.List)
	s.router.GET("/resources/:id", s.handler.Get)
	s.router.GET("/resources/:id/availability", s.handler.Availability)
	s.router.POST("/resources", authMiddleware, s.handler.Create)
	s.router.PUT("/resources/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/resources/:id", authMiddleware, s.handler.Deactivate)
	s.router.GET("/availability", s.handler.AvailabilityOn)
}

func (s *ResourceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestResourceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ResourceHandlerTestSuite) TestCreate() {
	b := builder.NewResourceBuilder()
	reqBody := b.BuildRequestDTO()
	view := b.BuildView()

	s.Run("success: 201 with the stored rules", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.actor, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, rules resource.Rules) (*queries.ResourceView, error) {
				s.Equal(b.Rules.Name, rules.Name)
				s.True(b.Rules.HourlyRate.Equal(rules.HourlyRate))
				s.Equal(40, rules.Capacity)
				s.Equal(b.Rules.OpeningTime, rules.OpeningTime)
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/resources", reqBody, "")

		var body resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("50.00", body.HourlyRate)
		s.Equal("active", body.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/resources/" + view.ID.String()})
	})

	s.Run("success: omitted rules take the catalog defaults", func() {
		minimal := map[string]any{"name": "Piscina", "hourly_rate": "0"}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, rules resource.Rules) (*queries.ResourceView, error) {
				defaults := resource.DefaultRules("Piscina", rules.HourlyRate)
				s.Equal(defaults, rules)
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/resources", minimal, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 on malformed rules", func() {
		testCases := []struct {
			name   string
			mutate testutil.Mutation
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "name too long", mutate: testutil.Field("name", strings.Repeat("n", 121))},
			{name: "unknown status", mutate: testutil.Field("status", "closed")},
			{name: "capacity zero", mutate: testutil.Field("capacity", 0)},
			{name: "opening time malformed", mutate: testutil.Field("opening_time", "8am")},
			{name: "weekday out of range", mutate: testutil.Field("allowed_weekdays", []int{0, 7})},
			{name: "negative advance", mutate: testutil.Field("min_advance_hours", -1)},
			{name: "rate not a number", mutate: testutil.Field("hourly_rate", "free")},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.JSONMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/resources", requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps command errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "duplicate name", commandsError: errs.Wrapf(resource.ErrDuplicateName, "%q", "Piscina"), expectedStatus: http.StatusBadRequest},
			{name: "inverted hours", commandsError: resource.ErrInvalidOpeningHours, expectedStatus: http.StatusBadRequest},
			{name: "resident", commandsError: resource.ErrAdministratorOnly, expectedStatus: http.StatusForbidden},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/resources", reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestUpdate / TestDeactivate
// ================================================================================

func (s *ResourceHandlerTestSuite) TestUpdate() {
	b := builder.NewResourceBuilder().WithHourlyRate("75.5")
	url := "/resources/" + b.ID.String()

	s.Run("success: returns the updated resource", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.actor, b.ID, gomock.Any()).
			Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRequestDTO(), "")

		var body resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("75.50", body.HourlyRate)
	})

	s.Run("error: 404 for an unknown resource", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), b.ID, gomock.Any()).
			Return(nil, resource.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "resource not found")
	})
}

func (s *ResourceHandlerTestSuite) TestDeactivate() {
	b := builder.NewResourceBuilder().AsInactive()

	s.Run("success: resource is kept and marked inactive", func() {
		s.mockCommands.EXPECT().Deactivate(gomock.Any(), s.actor, b.ID).Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/resources/"+b.ID.String(), nil, "")

		var body resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("inactive", body.Status)
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/resources/42", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *ResourceHandlerTestSuite) TestList() {
	s.Run("success: forwards the status filter", func() {
		views := []*queries.ResourceView{
			builder.NewResourceBuilder().WithName("Gimnasio").BuildView(),
			builder.NewResourceBuilder().WithName("Piscina").BuildView(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), "active").Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?status=active", nil, "")

		var body []resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("Gimnasio", body[0].Name)
	})

	s.Run("success: no resources is an empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), "").Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: 400 for an unknown status", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), "closed").Return(nil, resource.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?status=closed", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid resource status")
	})
}

func (s *ResourceHandlerTestSuite) TestGet() {
	view := builder.NewResourceBuilder().WithWeekdays(5, 6).BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+view.ID.String(), nil, "")

		var body resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]int{5, 6}, body.AllowedWeekdays)
	})

	s.Run("error: 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, resource.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *ResourceHandlerTestSuite) TestAvailability() {
	id := uuid.New()

	s.Run("success: occupied and free windows", func() {
		view := &queries.AvailabilityView{
			ResourceID:  id,
			Date:        "2026-03-04",
			Open:        true,
			OpeningTime: "08:00",
			ClosingTime: "22:00",
			Occupied:    []queries.WindowView{{Start: "10:00", End: "12:00"}},
			Free:        []queries.WindowView{{Start: "08:00", End: "10:00"}, {Start: "12:00", End: "22:00"}},
			Available:   true,
		}
		s.mockAvailability.EXPECT().ForResource(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, date calendar.Date) (*queries.AvailabilityView, error) {
				s.Equal("2026-03-04", date.String())
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+id.String()+"/availability?date=2026-03-04", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Occupied, 1)
		s.Len(body.Free, 2)
		s.True(body.Available)
	})

	s.Run("success: closed day has empty windows", func() {
		view := &queries.AvailabilityView{ResourceID: id, Date: "2026-03-08"}
		s.mockAvailability.EXPECT().ForResource(gomock.Any(), id, gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+id.String()+"/availability?date=2026-03-08", nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]any{}, body["occupied"])
		s.Equal([]any{}, body["free"])
		s.Equal(false, body["open"])
	})

	s.Run("error: 400 when date is missing or malformed", func() {
		for _, q := range []string{"", "?date=", "?date=tomorrow"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
				"/resources/"+id.String()+"/availability"+q, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("success: every active resource on a date", func() {
		views := []*queries.AvailabilityView{{ResourceID: id, Date: "2026-03-04", Open: true}}
		s.mockAvailability.EXPECT().ForDate(gomock.Any(), gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2026-03-04", nil, "")

		var body []resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("error: 400 without a date on the all-resources view", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "date query parameter is required")
	})
}
