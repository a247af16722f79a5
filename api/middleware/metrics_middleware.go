package middleware

import (
	"errors"
	"net/http"
	"time"

	"legalplatform/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records one observation per request, labelled by the route
// template rather than the raw path.
func Metrics(recorder *metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			recorder.ObserveRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}
