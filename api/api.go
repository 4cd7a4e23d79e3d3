package api

import (
	"fmt"
	"time"

	"stocksvc/internal/logger"
	"stocksvc/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	StockService    service.StockService
	PurchaseService service.PurchaseService
	HealthService   service.HealthService
	Logger          *zap.SugaredLogger
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stocksvc"})
	})
	router.GET("/ping", m.ping)
	router.GET("/health", m.health)
	router.GET("/ready", m.ready)
	router.GET("/stock/:symbol", m.getStock)
	router.POST("/stock/:symbol", m.addPurchase)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c)
	log.Warnf("request failed: %v", err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// logRequestMiddleware stamps every request with an id and a request-scoped
// logger, then records the outcome and duration after the handler runs.
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	log := m.Logger.With(
		"requestId", requestID,
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	ctx.Set(logger.ContextKey, log)
	ctx.Header("X-Request-Id", requestID)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("request complete",
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
