package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agriconnect/logging"
)

type Handlers struct {
	Profiles     *ProfileHandler
	Plans        *RepaymentPlanHandler
	Connections  *ConnectionHandler
	LoanRequests *LoanRequestHandler
}

// Limiters bound the routes that cost something. Plans guards the route that
// calls the model and is meant to be tighter than Writes. Either may be nil.
type Limiters struct {
	Plans  *RateLimiter
	Writes *RateLimiter
}

func NewRouter(h Handlers, limiters Limiters, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(LoggingMiddleware(logging.OrNop(logger)), gin.Recovery())

	limited := func(limiter *RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
		if limiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{RateLimitMiddleware(limiter), handler}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/profiles", h.Profiles.List)
	r.GET("/profiles/:id", h.Profiles.Get)
	r.POST("/profiles/:id/repayment-plan", limited(limiters.Plans, h.Plans.Start)...)

	r.GET("/repayment-plan", h.Plans.Get)
	r.DELETE("/repayment-plan", h.Plans.Close)

	r.GET("/connections", h.Connections.Dashboard)

	r.GET("/loan-requests", h.LoanRequests.List)
	r.POST("/loan-requests", limited(limiters.Writes, h.LoanRequests.Submit)...)
	r.POST("/loan-requests/:id/accept", h.LoanRequests.Accept)
	r.POST("/loan-requests/:id/decline", h.LoanRequests.Decline)

	return r
}
