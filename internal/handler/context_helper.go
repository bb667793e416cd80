package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/logger"
)

// sessionParam reads the :id path parameter and tags the request log with it.
func sessionParam(c *gin.Context) string {
	id := c.Param("id")
	c.Set(logger.SessionKey, id)
	return id
}

// bindOptionalJSON decodes the body into dest; an empty body leaves dest untouched.
func bindOptionalJSON(c *gin.Context, dest interface{}, message string) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}
