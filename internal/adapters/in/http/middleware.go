package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HeaderUserID carries the authenticated caller, set by the identity layer in front of
// the service.
const HeaderUserID = "X-User-ID"

const callerKey = "caller_id"

// RequireCaller rejects requests without a caller id and stores it on the context.
func RequireCaller() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callerID := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if callerID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			}
			c.Set(callerKey, callerID)
			return next(c)
		}
	}
}

func callerID(c echo.Context) string {
	id, _ := c.Get(callerKey).(string)
	return id
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the status before it is logged
				c.Error(err)
			}

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("caller_id", callerID(c)),
			)
			return nil
		}
	}
}
