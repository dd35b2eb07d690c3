package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/skemadiff/middleware"
)

// CheckCompatibility diffs the request body against the baseline and
// rejects breaking uploads with 409 before next runs.
func CheckCompatibility(baseline middleware.Baseline, opts middleware.Options) echo.MiddlewareFunc {
	g := middleware.NewGate(baseline, opts)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res, err := g.Check(c.Request())
			if err != nil {
				status, payload := middleware.StatusPayload(err)
				return c.JSON(status, payload)
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithResult(c.Request().Context(), res)))
			return next(c)
		}
	}
}

// GetResult fetches the gate Result from echo.Context.
func GetResult(c echo.Context) (middleware.Result, bool) {
	return middleware.ResultFromContext(c.Request().Context())
}
