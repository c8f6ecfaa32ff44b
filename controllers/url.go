package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shorturl/repository"
	"shorturl/shortener"
	"shorturl/shortid"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type uploadReqData struct {
	Url string `json:"url"`
}

type UrlController struct {
	Shortener      *shortener.Service
	Log            *zap.Logger
	RedirectOrigin string
}

func (u UrlController) shortURL(id shortid.Identifier) string {
	return strings.TrimSuffix(u.RedirectOrigin, "/") + "/" + id.ShortForm()
}

func (u UrlController) Upload(c *gin.Context) {
	var req uploadReqData
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Log.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := u.Shortener.Shorten(c.Request.Context(), req.Url)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidURL) {
			u.Log.Warn("invalid upload data", zap.String("url", req.Url))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload data"})
			return
		}
		u.Log.Error("failed to shorten url", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          id.ShortForm(),
		"integerForm": id.IntegerForm(),
		"shortUrl":    u.shortURL(id),
	})
}

func (u UrlController) Info(c *gin.Context) {
	entry, ok := u.lookup(c, u.Shortener.Resolve)
	if !ok {
		return
	}

	var lastAccessed interface{}
	if entry.LastAccessed != nil {
		lastAccessed = entry.LastAccessed.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"id":            entry.ID.ShortForm(),
		"integerForm":   entry.ID.IntegerForm(),
		"url":           entry.LongURL,
		"shortUrl":      u.shortURL(entry.ID),
		"created":       entry.Created.UTC().Format(time.RFC3339),
		"lastAccessed":  lastAccessed,
		"accessCounter": entry.AccessCounter,
	})
}

func (u UrlController) Redirect(c *gin.Context) {
	entry, ok := u.lookup(c, u.Shortener.Visit)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, entry.LongURL)
}

// lookup resolves the url_id path parameter with find and writes the error
// response when it fails.
func (u UrlController) lookup(c *gin.Context, find func(ctx context.Context, shortForm string) (*shortener.Entry, error)) (*shortener.Entry, bool) {
	urlID := c.Param("url_id")

	codec, err := u.Shortener.Codec(c.Request.Context())
	if err != nil {
		u.Log.Error("codec unavailable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	// not even worth a database lookup
	if !codec.IsValidDecodeInput(urlID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid short link"})
		return nil, false
	}

	entry, err := find(c.Request.Context(), urlID)
	switch {
	case err == nil:
		return entry, true
	case errors.Is(err, shortid.ErrInvalidShortForm):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid short link"})
	case errors.Is(err, shortid.ErrInternalInconsistency):
		u.Log.Warn("short id has no integer form", zap.String("url_id", urlID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid short link"})
	case errors.Is(err, repository.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "short link not found"})
	default:
		u.Log.Error("failed to look up short id", zap.String("url_id", urlID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
	return nil, false
}
