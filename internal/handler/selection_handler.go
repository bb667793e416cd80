package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wazai-maps/internal/dto"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/response"
)

type selectionService interface {
	Select(id, eventID string) (*dto.DetailView, error)
	ClearSelection(id string) error
	Detail(id string) (*dto.DetailView, error)
}

// SelectionHandler selects events and renders the detail panel.
type SelectionHandler struct {
	service selectionService
}

// NewSelectionHandler constructs the handler.
func NewSelectionHandler(service selectionService) *SelectionHandler {
	return &SelectionHandler{service: service}
}

// Select godoc
// @Summary Select an event
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectRequest true "Event to select"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/selection [put]
func (h *SelectionHandler) Select(c *gin.Context) {
	id := sessionParam(c)
	var req dto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}
	view, err := h.service.Select(id, req.EventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Clear godoc
// @Summary Close the detail panel
// @Tags Selection
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id}/selection [delete]
func (h *SelectionHandler) Clear(c *gin.Context) {
	if err := h.service.ClearSelection(sessionParam(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Detail godoc
// @Summary Detail panel of the selected event
// @Tags Selection
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Success 204 "Nothing selected"
// @Router /sessions/{id}/detail [get]
func (h *SelectionHandler) Detail(c *gin.Context) {
	view, err := h.service.Detail(sessionParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if view == nil {
		response.NoContent(c)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
