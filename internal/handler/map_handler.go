package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wazai-maps/internal/dto"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/response"
)

type mapService interface {
	MapView(id string) (*dto.MapView, error)
	Viewport(id string, req dto.ViewportRequest) (*dto.MapView, error)
	Click(id string, req dto.ClickRequest) (*dto.ClickResponse, error)
}

// MapHandler exposes the map surface of a session.
type MapHandler struct {
	service mapService
}

// NewMapHandler constructs the handler.
func NewMapHandler(service mapService) *MapHandler {
	return &MapHandler{service: service}
}

// View godoc
// @Summary Camera and marker render list
// @Tags Map
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/map [get]
func (h *MapHandler) View(c *gin.Context) {
	view, err := h.service.MapView(sessionParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Viewport godoc
// @Summary Resize, pan or zoom the map
// @Tags Map
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ViewportRequest true "Viewport change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/viewport [put]
func (h *MapHandler) Viewport(c *gin.Context) {
	id := sessionParam(c)
	var req dto.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid viewport payload"))
		return
	}
	view, err := h.service.Viewport(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Click godoc
// @Summary Click on the map
// @Description A click on a marker selects its event; a click elsewhere clears the selection.
// @Tags Map
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ClickRequest true "Pixel offset inside the map"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/map/click [post]
func (h *MapHandler) Click(c *gin.Context) {
	id := sessionParam(c)
	var req dto.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid click payload"))
		return
	}
	res, err := h.service.Click(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
