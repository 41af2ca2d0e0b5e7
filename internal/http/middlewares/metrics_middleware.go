package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiteshgarg/medium-blog/internal/observability"
)

func Metrics(p *observability.Prom) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method

		p.InFlight.WithLabelValues(method, route).Inc()
		start := time.Now()

		ctx.Next()

		p.InFlight.WithLabelValues(method, route).Dec()

		status := strconv.Itoa(ctx.Writer.Status())

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
	}
}
