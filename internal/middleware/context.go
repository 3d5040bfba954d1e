package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestContext stamps every request with a request id, the client address
// and a start time, and echoes the id in X-Request-ID.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = c.GetHeader(constants.HeaderXCorrelationID)
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), requestID, c.ClientIP(), c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Header(constants.HeaderXRequestID, requestID)

		c.Next()

		logger.DebugWithContext(ctx, "Request completed").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			StatusCode(c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}

// RequestTimeout bounds the request context.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			logger.WarnWithContext(ctx, "Request timed out").
				Duration(timeout).
				Path(c.Request.URL.Path).
				Log()
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"message": constants.MsgTimeout,
			})
		}
	}
}
