package api

import (
	"net/http"

	"condo-reservations/internal/domain/calendar"
	reqdto "condo-reservations/internal/handler/dto/request"
	resdto "condo-reservations/internal/handler/dto/response"
	"condo-reservations/internal/handler/httperr"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/commands"
	"condo-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errDateRequired = errs.NewIn(errs.ErrValidation, "date query parameter is required")

type ResourceHandler struct {
	cmds         commands.ResourceCommands
	q            queries.ResourceQueries
	availability queries.AvailabilityQueries
}

func NewResourceHandler(
	cmds commands.ResourceCommands,
	q queries.ResourceQueries,
	availability queries.AvailabilityQueries,
) *ResourceHandler {
	return &ResourceHandler{cmds: cmds, q: q, availability: availability}
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param status query string false "active|inactive|maintenance"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, views, resdto.FromResourceViews)
}

// @Summary Get resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromResourceView)
}

// @Summary Create resource
// @Description Register a common area (administrators only). Omitted rules take the catalog defaults.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	rules, err := req.ToRules()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), actor, rules)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/resources/"+view.ID.String())
	respond(c, http.StatusCreated, view, resdto.FromResourceView)
}

// @Summary Update resource
// @Description Replace the rules of a resource. Existing bookings keep their cost.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.ResourceRequest true "Resource"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	rules, err := req.ToRules()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), actor, id, rules)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromResourceView)
}

// @Summary Deactivate resource
// @Description Resources are never deleted; they stop accepting bookings
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Deactivate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.cmds.Deactivate(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromResourceView)
}

// @Summary Resource availability
// @Description Occupied and free windows of one resource on a date
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/availability [get]
func (h *ResourceHandler) Availability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	date, err := queryDate(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.availability.ForResource(c.Request.Context(), id, date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, view, resdto.FromAvailabilityView)
}

// @Summary Availability of all resources
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *ResourceHandler) AvailabilityOn(c *gin.Context) {
	date, err := queryDate(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.availability.ForDate(c.Request.Context(), date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respond(c, http.StatusOK, views, resdto.FromAvailabilityViews)
}

func queryDate(c *gin.Context) (calendar.Date, error) {
	v := c.Query("date")
	if v == "" {
		return calendar.Date{}, errDateRequired
	}
	return calendar.ParseDate(v)
}
