// File: internal/middleware/middleware.go
package middleware

import (
	"net/http"
	"time"

	"users-api/internal/api"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const rateLimitExpiry = 3 * time.Minute

// RequestID 為每個請求設定 X-Request-Id（沿用 client 提供的值）
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger 每個請求輸出一行 zerolog 日誌，依狀態碼決定等級
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			if he, ok := v.Error.(*echo.HTTPError); ok {
				status = he.Code
			}

			var ev *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case status >= http.StatusBadRequest:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			ev.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// RateLimiter 以 client IP 為單位限流；perSecond <= 0 時不啟用
func RateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	deny := func(c echo.Context, _ string, _ error) error {
		return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Message: "rate limit exceeded"})
	}
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: rateLimitExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return deny(c, "", err)
		},
		DenyHandler: deny,
	})
}
