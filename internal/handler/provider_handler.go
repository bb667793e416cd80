package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/middleware"
	"github.com/noah-isme/wazai-maps/pkg/response"
)

type providerService interface {
	Providers(ctx context.Context) dto.ProviderOptions
	Invalidate(ctx context.Context) error
}

// ProviderHandler serves the provider picker and cache administration.
type ProviderHandler struct {
	service providerService
}

// NewProviderHandler constructs the handler.
func NewProviderHandler(service providerService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// List godoc
// @Summary Provider picker options
// @Description ALL comes first. When the search API is down only ALL is returned and meta.degraded is set.
// @Tags Providers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	opts := h.service.Providers(c.Request.Context())
	middleware.SetDegraded(c, opts.Degraded)
	response.JSON(c, http.StatusOK, opts, middleware.ExtractMeta(c))
}

// InvalidateCache godoc
// @Summary Drop cached search responses
// @Tags Providers
// @Success 204
// @Failure 500 {object} response.Envelope
// @Router /cache [delete]
func (h *ProviderHandler) InvalidateCache(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
