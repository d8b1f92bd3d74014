package middleware

import (
	"net/http"
	"runtime/debug"
	"strconv"

	apperrors "github.com/anxforever/portfolio-api/errors"
	"github.com/anxforever/portfolio-api/logger"
	"github.com/anxforever/portfolio-api/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the
// structured response contract: {success: false, errors: [...]} with the
// status the error maps to. Internal detail is logged server-side and never
// echoed to the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appErr, ok := err.(*apperrors.AppError); ok {
			if appErr.Type == apperrors.ServerError {
				log.Errorw("Internal error handling request",
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
					"error", appErr.Unwrap(),
				)
			} else {
				log.Debugw("Request rejected",
					"type", string(appErr.Type),
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
				)
			}

			if appErr.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(appErr.RetryAfter.Seconds())))
			}

			c.JSON(appErr.GetHTTPStatus(), types.ContactResponse{
				Success: false,
				Errors:  appErr.ErrorList(),
			})
			return
		}

		log.Errorw("Unexpected server error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, types.ContactResponse{
			Success: false,
			Errors:  []string{apperrors.MsgServerError},
		})
	}
}

// Recovery converts panics into the same structured 500 response instead of
// gin's bare status, keeping the response contract intact for any fault.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.GetLogger().Errorw("Panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ContactResponse{
					Success: false,
					Errors:  []string{apperrors.MsgServerError},
				})
			}
		}()
		c.Next()
	}
}
