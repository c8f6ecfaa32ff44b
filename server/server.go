package server

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"shorturl/controllers"
	"shorturl/metrics"
	"shorturl/shortener"

	"github.com/gin-gonic/gin"
	"github.com/jxskiss/base62"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 30 * time.Second
	requestIDHeader = "X-Request-ID"
)

func NewRouter(service *shortener.Service, logger *zap.Logger, redirectOrigin string) *gin.Engine {
	metrics.Init()

	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.Use(requestID(), observe())

	health := controllers.HealthController{Shortener: service, Log: logger}
	router.GET("/health", health.Status)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	url := controllers.UrlController{
		Shortener:      service,
		Log:            logger,
		RedirectOrigin: redirectOrigin,
	}

	router.POST("/api/v1/urls", withTimeout(url.Upload, defaultTimeout))
	router.GET("/api/v1/urls/:url_id", withTimeout(url.Info, defaultTimeout))
	router.GET("/:url_id", withTimeout(url.Redirect, defaultTimeout))

	return router
}

// withTimeout bounds the request context, so store calls made by handler give up after timeout.
func withTimeout(handler gin.HandlerFunc, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		handler(c)
	}
}

// requestID keeps the caller's X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = newRequestID()
			c.Request.Header.Set(requestIDHeader, id)
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func newRequestID() string {
	src := make([]byte, 16)
	if _, err := rand.Read(src); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return base62.EncodeToString(src)
}

// observe records request counts and latencies by route template.
func observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
