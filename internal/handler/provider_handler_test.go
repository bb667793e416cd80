package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/models"
)

type providerServiceMock struct {
	degraded      bool
	invalidateErr error
	invalidated   bool
}

func (m *providerServiceMock) Providers(ctx context.Context) dto.ProviderOptions {
	opts := []dto.ProviderOption{{Value: models.FilterAll, Label: "All providers"}}
	if !m.degraded {
		opts = append(opts, dto.ProviderOption{Value: "CONNPASS", Label: "CONNPASS"})
	}
	return dto.ProviderOptions{Options: opts, Degraded: m.degraded}
}

func (m *providerServiceMock) Invalidate(ctx context.Context) error {
	m.invalidated = true
	return m.invalidateErr
}

func TestProviderHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProviderHandler(&providerServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/providers", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"value":"CONNPASS"`)
	require.NotContains(t, w.Body.String(), `"meta"`)
}

func TestProviderHandlerListFlagsDegradedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProviderHandler(&providerServiceMock{degraded: true})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/providers", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"meta":{"degraded":true}`)
	require.Contains(t, w.Body.String(), `"value":"ALL"`)
}

func TestProviderHandlerInvalidateCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &providerServiceMock{}
	handler := NewProviderHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/cache", nil)

	handler.InvalidateCache(c)
	require.Equal(t, http.StatusNoContent, c.Writer.Status())
	require.True(t, mock.invalidated)

	mock.invalidateErr = errors.New("redis down")
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/cache", nil)
	handler.InvalidateCache(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
