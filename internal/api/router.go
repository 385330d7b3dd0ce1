package api

import (
	"database/sql"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/saadjs/bump-cli/internal/logger"
	"github.com/saadjs/bump-cli/internal/pregnancy"
)

type Options struct {
	AllowOrigins []string
	Limits       pregnancy.LookAheadLimits
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func NewRouter(db *sql.DB, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	h := NewHandler(db, opts.Limits)
	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/dashboard", h.Dashboard)
	api.GET("/timeline", h.Timeline)
	api.GET("/fruit", h.Fruit)
	api.GET("/weight/status", h.WeightStatus)
	api.GET("/weight/weeks", h.WeightWeeks)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			logger.Error("request failed", append(attrs, "err", c.Errors.String())...)
			return
		}
		logger.Info("request", attrs...)
	}
}
