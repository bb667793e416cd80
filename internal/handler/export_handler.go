package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/service"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/response"
)

type exportService interface {
	Export(id string, query dto.ExportQuery) (*dto.ExportFile, error)
}

type shareService interface {
	Publish(owner string, file dto.ExportFile) (*dto.ExportLink, error)
	Open(token string) (*service.SharedFile, error)
}

// ExportHandler downloads or shares the current event list.
type ExportHandler struct {
	exports exportService
	shares  shareService
}

// NewExportHandler constructs the handler. shares may be nil, which disables links.
func NewExportHandler(exports exportService, shares shareService) *ExportHandler {
	return &ExportHandler{exports: exports, shares: shares}
}

// Export godoc
// @Summary Export the event list
// @Tags Export
// @Produce text/csv,application/pdf,text/calendar
// @Param id path string true "Session ID"
// @Param format query string true "csv, pdf or ics" Enums(csv, pdf, ics)
// @Param order query string false "asc or desc"
// @Param q query string false "Local text filter"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	file, ok := h.render(c)
	if !ok {
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Share godoc
// @Summary Create a download link for an export
// @Tags Export
// @Produce json
// @Param id path string true "Session ID"
// @Param format query string true "csv, pdf or ics" Enums(csv, pdf, ics)
// @Param order query string false "asc or desc"
// @Param q query string false "Local text filter"
// @Success 201 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /sessions/{id}/export/link [post]
func (h *ExportHandler) Share(c *gin.Context) {
	if h.shares == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "export links are disabled"))
		return
	}
	file, ok := h.render(c)
	if !ok {
		return
	}
	link, err := h.shares.Publish(c.Param("id"), *file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Download godoc
// @Summary Download a shared export
// @Tags Export
// @Produce text/csv,application/pdf,text/calendar
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	if h.shares == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	shared, err := h.shares.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer shared.File.Close() //nolint:errcheck
	body, err := io.ReadAll(shared.File)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, shared.Filename, shared.ContentType, body)
}

func (h *ExportHandler) render(c *gin.Context) (*dto.ExportFile, bool) {
	id := sessionParam(c)
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid export query"))
		return nil, false
	}
	file, err := h.exports.Export(id, query)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return file, true
}
