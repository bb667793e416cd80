package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/models"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/logger"
)

type sessionServiceMock struct {
	created  dto.CreateSessionRequest
	searched dto.SearchRequest
}

func (m *sessionServiceMock) Create(ctx context.Context, req dto.CreateSessionRequest) (*models.SessionSnapshot, error) {
	m.created = req
	return &models.SessionSnapshot{ID: "session-1", Loading: true, Generation: 1}, nil
}

func (m *sessionServiceMock) Get(id string) (*models.SessionSnapshot, error) {
	if id != "session-1" {
		return nil, appErrors.ErrSessionNotFound
	}
	return &models.SessionSnapshot{ID: id}, nil
}

func (m *sessionServiceMock) Delete(id string) error {
	if id != "session-1" {
		return appErrors.ErrSessionNotFound
	}
	return nil
}

func (m *sessionServiceMock) Search(ctx context.Context, id string, req dto.SearchRequest) (*dto.SearchAccepted, error) {
	m.searched = req
	return &dto.SearchAccepted{SessionID: id, Generation: 2, Params: req.Params()}, nil
}

func TestSessionHandlerCreateAcceptsEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSessionHandler(&sessionServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/sessions", nil)

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"id":"session-1"`)
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestSessionHandlerCreateBindsOptions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &sessionServiceMock{}
	handler := NewSessionHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/sessions",
		bytes.NewBufferString(`{"timezone":"Asia/Tokyo","width":640,"search":{"keyword":"go","country":"JP"}}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Asia/Tokyo", mock.created.Timezone)
	require.Equal(t, 640, mock.created.Width)
	require.NotNil(t, mock.created.Search)
	require.Equal(t, "JP", mock.created.Search.Country)
}

func TestSessionHandlerCreateRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSessionHandler(&sessionServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString(`{"width":`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
}

func TestSessionHandlerSearchIsAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &sessionServiceMock{}
	handler := NewSessionHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "session-1"}}
	c.Request, _ = http.NewRequest(http.MethodPost, "/sessions/session-1/search",
		bytes.NewBufferString(`{"keyword":"rust","country":"tw","provider":"CONNPASS"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Search(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, "rust", mock.searched.Keyword)
	require.Contains(t, w.Body.String(), `"generation":2`)
	require.Equal(t, "session-1", c.GetString(logger.SessionKey))
}

func TestSessionHandlerGetUnknownSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSessionHandler(&sessionServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Request, _ = http.NewRequest(http.MethodGet, "/sessions/missing", nil)

	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrSessionNotFound.Code)
}

func TestSessionHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSessionHandler(&sessionServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "session-1"}}
	c.Request, _ = http.NewRequest(http.MethodDelete, "/sessions/session-1", nil)

	handler.Delete(c)

	require.Equal(t, http.StatusNoContent, c.Writer.Status())
}
