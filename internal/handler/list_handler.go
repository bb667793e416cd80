package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wazai-maps/internal/dto"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/response"
)

type listService interface {
	Events(id string, query dto.EventListQuery) (*dto.EventList, error)
	Calendar(id string, query dto.CalendarQuery) (*dto.CalendarView, error)
}

// ListHandler serves the event list and calendar of a session.
type ListHandler struct {
	service listService
}

// NewListHandler constructs the handler.
func NewListHandler(service listService) *ListHandler {
	return &ListHandler{service: service}
}

// Events godoc
// @Summary Sorted event list
// @Tags Events
// @Produce json
// @Param id path string true "Session ID"
// @Param order query string false "asc or desc" Enums(asc, desc)
// @Param q query string false "Local text filter"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/events [get]
func (h *ListHandler) Events(c *gin.Context) {
	id := sessionParam(c)
	var query dto.EventListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid list query"))
		return
	}
	list, err := h.service.Events(id, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Calendar godoc
// @Summary Calendar view
// @Description Days with events are marked; events on the chosen day are listed by time.
// @Tags Events
// @Produce json
// @Param id path string true "Session ID"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/calendar [get]
func (h *ListHandler) Calendar(c *gin.Context) {
	id := sessionParam(c)
	view, err := h.service.Calendar(id, dto.CalendarQuery{Date: c.Query("date")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
