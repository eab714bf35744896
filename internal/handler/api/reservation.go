package api

import (
	"net/http"
	"strconv"

	"condo-reservations/internal/domain/calendar"
	"condo-reservations/internal/domain/user"
	reqdto "condo-reservations/internal/handler/dto/request"
	resdto "condo-reservations/internal/handler/dto/response"
	"condo-reservations/internal/handler/httperr"
	"condo-reservations/internal/usecase/commands"
	"condo-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds     commands.ReservationCommands
	workflow commands.WorkflowCommands
	q        queries.ReservationQueries
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	workflow commands.WorkflowCommands,
	q queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, workflow: workflow, q: q}
}

// @Summary Create reservation
// @Description Request a common-area booking; it starts Pending until an administrator approves it
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/reservations/"+view.ID.String())
	respond(c, http.StatusCreated, view, resdto.FromReservationView)
}

// @Summary Get reservation
// @Description Get a reservation with its transition history. Residents may only read their own.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromReservationView)
}

// @Summary List reservations
// @Description List reservations newest first with keyset pagination. Residents only see their own.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param resource_id query string false "Resource ID"
// @Param requester_id query string false "Requester ID (administrators only)"
// @Param status query string false "pending|confirmed|rejected|cancelled|completed"
// @Param from query string false "First booking date (YYYY-MM-DD)"
// @Param to query string false "Last booking date (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	f := queries.ReservationFilter{}
	var err error
	if f.ResourceID, err = optionalUUID(c, "resource_id"); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource_id", nil)
		return
	}
	if f.RequesterID, err = optionalUUID(c, "requester_id"); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid requester_id", nil)
		return
	}
	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	if f.From, f.To, err = dateRange(c); err != nil {
		httperr.Abort(c, err)
		return
	}
	f.Limit = queryLimit(c)
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.List(c.Request.Context(), actor, f, cursor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromReservationViews(items, next)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Upcoming reservations
// @Description Pending and confirmed reservations from today on, soonest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 10)"
// @Success 200 {object} resdto.ReservationListResponse
// @Router /reservations/upcoming [get]
func (h *ReservationHandler) Upcoming(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = iv
		}
	}
	items, err := h.q.Upcoming(c.Request.Context(), actor, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromReservationViews(items, nil)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Reservation statistics
// @Description Counts per status, revenue, busiest resources and bookings per month (administrators only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param from query string false "First booking date (YYYY-MM-DD)"
// @Param to query string false "Last booking date (YYYY-MM-DD)"
// @Param top query int false "Number of top resources (default 5)"
// @Success 200 {object} resdto.StatsResponse
// @Failure 403 {object} httperr.Response
// @Router /reservations/stats [get]
func (h *ReservationHandler) Stats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	from, to, err := dateRange(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	top := 0
	if v := c.Query("top"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			top = iv
		}
	}
	stats, err := h.q.Stats(c.Request.Context(), actor, queries.StatsFilter{From: from, To: to}, top)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, stats, resdto.FromStatsView)
}

// @Summary Reschedule reservation
// @Description Move a pending reservation to another date and slot; the cost is recomputed
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RescheduleRequest true "New schedule"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Reschedule(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.Reschedule(c.Request.Context(), actor, id, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromReservationView)
}

// @Summary Approve reservation
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	h.transition(c, false, func(c *gin.Context, actor user.Actor, id uuid.UUID, _ string) (*queries.ReservationView, error) {
		return h.workflow.Approve(c.Request.Context(), actor, id)
	})
}

// @Summary Reject reservation
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReasonRequest true "Rejection reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	h.transition(c, true, func(c *gin.Context, actor user.Actor, id uuid.UUID, reason string) (*queries.ReservationView, error) {
		return h.workflow.Reject(c.Request.Context(), actor, id, reason)
	})
}

// @Summary Cancel reservation
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReasonRequest false "Cancellation reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, true, func(c *gin.Context, actor user.Actor, id uuid.UUID, reason string) (*queries.ReservationView, error) {
		return h.workflow.Cancel(c.Request.Context(), actor, id, reason)
	})
}

// @Summary Complete reservation
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c *gin.Context) {
	h.transition(c, false, func(c *gin.Context, actor user.Actor, id uuid.UUID, _ string) (*queries.ReservationView, error) {
		return h.workflow.Complete(c.Request.Context(), actor, id)
	})
}

type transitionCall func(c *gin.Context, actor user.Actor, id uuid.UUID, reason string) (*queries.ReservationView, error)

func (h *ReservationHandler) transition(c *gin.Context, withReason bool, call transitionCall) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.ReasonRequest
	// the body is optional; an empty one means no reason
	if withReason && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	view, err := call(c, actor, id, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromReservationView)
}

func dateRange(c *gin.Context) (from, to *calendar.Date, err error) {
	if v := c.Query("from"); v != "" {
		d, err := calendar.ParseDate(v)
		if err != nil {
			return nil, nil, err
		}
		from = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := calendar.ParseDate(v)
		if err != nil {
			return nil, nil, err
		}
		to = &d
	}
	return from, to, nil
}
