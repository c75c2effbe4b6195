package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"charity-fund-backend/pkg/id"
)

// RequestID tags every request with a 32-hex id unless the caller sent one.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32})
}

// RequestLogger puts a request-scoped logger into the request context and
// writes one access line per request. Must run after RequestID.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	access := echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ev := zerolog.Ctx(c.Request().Context()).Info()
			if v.Error != nil || v.Status >= 500 {
				ev = zerolog.Ctx(c.Request().Context()).Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		logged := access(next)
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			l := log.With().Str("request_id", rid).Logger()
			c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
			return logged(c)
		}
	}
}
