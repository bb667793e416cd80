package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/service"
	"github.com/noah-isme/wazai-maps/pkg/middleware/requestid"
	"github.com/noah-isme/wazai-maps/pkg/response"
)

func TestResponseMetaCarriesRequestIDAndDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware(), WithResponseMeta())
	r.GET("/providers", func(c *gin.Context) {
		SetDegraded(c, true)
		response.JSON(c, http.StatusOK, gin.H{"options": []string{"ALL"}}, ExtractMeta(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body.Meta["request_id"])
	assert.Equal(t, true, body.Meta["degraded"])
	assert.Contains(t, body.Meta, processingTimeMs)
}

func TestSetDegradedFalseLeavesMetaEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	SetDegraded(c, false)

	assert.Nil(t, ExtractMeta(c))
}

func TestMetricsLabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics, "/metrics"))
	r.GET("/sessions/:id/map", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	for _, path := range []string{"/sessions/a/map", "/sessions/b/map", "/nope/1", "/nope/2", "/metrics"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := w.Body.String()
	assert.Contains(t, out, `http_requests_total{method="GET",path="/sessions/:id/map",status="200"} 2`)
	assert.Contains(t, out, `http_requests_total{method="GET",path="unmatched",status="404"} 2`)
	for _, line := range strings.Split(out, "\n") {
		assert.NotContains(t, line, `path="/metrics"`)
	}
}
