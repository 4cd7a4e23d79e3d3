package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}

// health is a liveness check only. It never calls upstreams.
func (h ApiHandler) health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "stocksvc",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// ready probes both upstreams and reports per-source detail.
func (h ApiHandler) ready(c *gin.Context) {
	price := h.HealthService.CheckPriceSource(c)
	performance := h.HealthService.CheckPerformanceSource(c)

	status := "ready"
	code := 200
	if !price.Healthy || !performance.Healthy {
		status = "not_ready"
		code = 503
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": gin.H{
			"price":       price,
			"performance": performance,
		},
	})
}
