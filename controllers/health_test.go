package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shorturl/repository"
	"shorturl/shortener"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHealthController_Status(t *testing.T) {
	tests := []struct {
		name               string
		repo               repository.Repository
		expectedStatusCode int
		expectedJSON       gin.H
	}{
		{
			"alphabet loaded",
			&dbRecorder{urls: map[int64]string{}},
			http.StatusOK,
			gin.H{"status": "ok", "radix": float64(53)},
		},
		{
			"store unavailable",
			repository.UnimplementedRepository{},
			http.StatusServiceUnavailable,
			gin.H{"status": "unavailable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := shortener.NewCounter(tt.repo, time.Hour, zap.NewNop())
			h := HealthController{
				Shortener: shortener.New(tt.repo, counter, zap.NewNop()),
				Log:       zap.NewNop(),
			}

			r := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(r)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
			h.Status(ctx)

			assert.Equal(t, tt.expectedStatusCode, r.Code)
			var got gin.H
			err := json.Unmarshal(r.Body.Bytes(), &got)
			assert.NoError(t, err)

			assert.Equal(t, tt.expectedJSON, got)
		})
	}
}
