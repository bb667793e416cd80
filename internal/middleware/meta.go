package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wazai-maps/pkg/middleware/requestid"
)

const (
	responseMetaKey  = "response_meta"
	requestStartKey  = "response_meta_start"
	degradedKey      = "degraded"
	processingTimeMs = "processing_time_ms"
)

// WithResponseMeta gives every request a meta map that handlers can pass to
// response.JSON. The request id is copied in up front; processing time is
// measured when the handler extracts the map.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := map[string]interface{}{}
		if id := requestid.Value(c); id != "" {
			meta["request_id"] = id
		}
		c.Set(responseMetaKey, meta)
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

// SetDegraded flags a response served without its upstream data.
func SetDegraded(c *gin.Context, degraded bool) {
	if !degraded {
		return
	}
	ensureMeta(c)[degradedKey] = true
}

// ExtractMeta returns the metadata for the response body, or nil when
// nothing was recorded.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	raw, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	meta, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta[processingTimeMs] = time.Since(t).Milliseconds()
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if raw, exists := c.Get(responseMetaKey); exists {
		if meta, ok := raw.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
