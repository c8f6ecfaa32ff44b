package controllers

import (
	"net/http"

	"shorturl/shortener"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthController reports ready once the stored alphabet can be loaded.
type HealthController struct {
	Shortener *shortener.Service
	Log       *zap.Logger
}

func (h HealthController) Status(c *gin.Context) {
	codec, err := h.Shortener.Codec(c.Request.Context())
	if err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "radix": codec.Radix()})
}
