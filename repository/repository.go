package repository

import (
	"context"
	"errors"
	"time"

	"shorturl/models"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	errUnimplemented  = errors.New("unimplemented")
)

type Repository interface {
	// BaseChars returns the alphabet short ids are written in.
	BaseChars(ctx context.Context) (string, error)
	// Add stores a long URL and returns the id assigned to its row.
	Add(ctx context.Context, longURL string) (int64, error)
	Get(ctx context.Context, id int64) (*models.Url, error)
	// Increment adds n to the access counter of the row and sets its last access time.
	Increment(ctx context.Context, id int64, n int64, at time.Time) error
}

// UnimplementedRepository can be embedded to implement only part of Repository.
type UnimplementedRepository struct{}

func (UnimplementedRepository) BaseChars(ctx context.Context) (string, error) {
	return "", errUnimplemented
}

func (UnimplementedRepository) Add(ctx context.Context, longURL string) (int64, error) {
	return 0, errUnimplemented
}

func (UnimplementedRepository) Get(ctx context.Context, id int64) (*models.Url, error) {
	return nil, errUnimplemented
}

func (UnimplementedRepository) Increment(ctx context.Context, id int64, n int64, at time.Time) error {
	return errUnimplemented
}
