// Package core provides the uniform HTTP response envelope for skeind
// handlers.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skeinlab/skein/pkg/errorx"
	"github.com/skeinlab/skein/pkg/logger"
)

// ErrResponse is the body returned for failed requests.
type ErrResponse struct {
	// Code is the business error code.
	Code int `json:"code"`
	// Message is the user-safe description of the failure.
	Message string `json:"message"`
	// Reference optionally links to documentation for this error.
	Reference string `json:"reference,omitempty"`
}

// WriteResponse writes either an error envelope or the success payload.
// Coded errors map to their registered HTTP status; uncoded errors become
// an opaque 500.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		coder := errorx.ParseCoder(err)
		logger.Warn("[API] %s %s failed (code=%d): %v",
			c.Request.Method, c.Request.URL.Path, coder.Code(), err)
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Reference: coder.Reference(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
