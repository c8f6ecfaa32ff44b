package cacher

import (
	"errors"
	"time"

	"shorturl/models"
)

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrUnexpectedError = errors.New("unexpected error")
)

// Entry is the cached result of one lookup: the row, or the error the lookup failed with.
type Entry struct {
	Url *models.Url
	Err error
}

type Engine interface {
	Get(key string) (*Entry, bool, error)
	Set(key string, entry *Entry, expiration time.Duration) error
	// Delete returns ErrEntryNotFound if nothing was cached under key.
	Delete(key string) error
}
