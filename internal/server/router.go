package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appointment-scheduler/internal/app"
)

type RouterConfig struct {
	Auth              app.AuthConfig
	MaxRequestsPerMin int
}

func NewRouter(a *app.App, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(a.Log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(app.RateLimitMiddleware(cfg.MaxRequestsPerMin, a.Log))

	router.GET("/healthz", a.HealthHandler)

	api := router.Group("/api")
	api.Use(app.AuthMiddleware(cfg.Auth, a.Log))
	{
		appointments := api.Group("/appointments")
		{
			appointments.POST("", a.CreateAppointmentHandler)
			appointments.GET("", a.ListAppointmentsHandler)
		}
		slots := api.Group("/slots")
		{
			slots.GET("", a.FreeSlotsHandler)
			slots.GET("/suggest", a.SuggestSlotHandler)
		}
	}

	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
