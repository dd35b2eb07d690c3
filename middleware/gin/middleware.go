package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/skemadiff/middleware"
)

// CheckCompatibility diffs the request body against the baseline, answers
// 409 with the breaking changes (or 400 with Issues for bad input), and
// otherwise stores the Result in the request context.
func CheckCompatibility(baseline middleware.Baseline, opts middleware.Options) gin.HandlerFunc {
	g := middleware.NewGate(baseline, opts)
	return func(c *gin.Context) {
		res, err := g.Check(c.Request)
		if err != nil {
			status, payload := middleware.StatusPayload(err)
			c.AbortWithStatusJSON(status, payload)
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithResult(c.Request.Context(), res))
		c.Next()
	}
}

// GetResult fetches the gate Result from gin.Context.
func GetResult(c *gin.Context) (middleware.Result, bool) {
	return middleware.ResultFromContext(c.Request.Context())
}
