package shortener

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shorturl/basecodec"
	"shorturl/metrics"
	"shorturl/repository"
	"shorturl/shortid"

	"go.uber.org/zap"
)

// Entry is a stored URL as seen through its short id.
type Entry struct {
	ID            shortid.Identifier
	LongURL       string
	Created       time.Time
	LastAccessed  *time.Time // nil if never accessed
	AccessCounter int64
}

type Service struct {
	repo    repository.Repository
	counter *Counter
	logger  *zap.Logger

	mu    sync.Mutex
	codec *basecodec.Codec
}

func New(repo repository.Repository, counter *Counter, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		counter: counter,
		logger:  logger,
	}
}

// Codec returns the codec for the stored alphabet. The alphabet is fetched on
// first use and kept for the lifetime of the service.
func (s *Service) Codec(ctx context.Context) (*basecodec.Codec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codec != nil {
		return s.codec, nil
	}

	baseChars, err := s.repo.BaseChars(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch alphabet: %w", err)
	}
	codec, err := basecodec.New(baseChars)
	if err != nil {
		return nil, fmt.Errorf("stored alphabet: %w", err)
	}
	s.logger.Info("alphabet loaded", zap.Int("radix", codec.Radix()))
	s.codec = codec
	return codec, nil
}

// Shorten stores longURL and returns the short id of the new row.
func (s *Service) Shorten(ctx context.Context, longURL string) (shortid.Identifier, error) {
	longURL, err := NormalizeURL(longURL)
	if err != nil {
		return shortid.Identifier{}, err
	}
	codec, err := s.Codec(ctx)
	if err != nil {
		return shortid.Identifier{}, err
	}

	n, err := s.repo.Add(ctx, longURL)
	if err != nil {
		return shortid.Identifier{}, fmt.Errorf("add url: %w", err)
	}
	id, err := shortid.FromInteger(codec, n)
	metrics.ObserveCodec("encode", err)
	if err != nil {
		return shortid.Identifier{}, err
	}
	s.logger.Debug("url shortened", zap.String("short_id", id.ShortForm()), zap.Int64("id", n))
	return id, nil
}

// Resolve looks up the entry a short form points to.
func (s *Service) Resolve(ctx context.Context, shortForm string) (*Entry, error) {
	codec, err := s.Codec(ctx)
	if err != nil {
		return nil, err
	}
	id, err := shortid.New(codec, shortForm)
	metrics.ObserveCodec("decode", err)
	if err != nil {
		return nil, err
	}

	url, err := s.repo.Get(ctx, id.IntegerForm())
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:            id,
		LongURL:       url.LongURL,
		Created:       url.Created,
		LastAccessed:  url.LastAccessed,
		AccessCounter: url.AccessCounter,
	}, nil
}

// Visit resolves shortForm and records one access to it. The returned entry
// already accounts for this access.
func (s *Service) Visit(ctx context.Context, shortForm string) (*Entry, error) {
	entry, err := s.Resolve(ctx, shortForm)
	if err != nil {
		return nil, err
	}
	now := s.counter.Record(entry.ID.IntegerForm())
	entry.LastAccessed = &now
	entry.AccessCounter++
	return entry, nil
}
