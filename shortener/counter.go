package shortener

import (
	"context"
	"errors"
	"time"

	"shorturl/metrics"
	"shorturl/pkg/concurrentqueue"
	"shorturl/repository"

	"go.uber.org/zap"
)

const DefaultFlushInterval = 5 * time.Second

// Counter batches access counter increments. Accesses are queued by Record
// and written by Flush, one Increment per row.
type Counter struct {
	repo     repository.Repository
	queue    concurrentqueue.Queue
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewCounter returns a Counter flushing every interval, or every
// DefaultFlushInterval if interval is not positive.
func NewCounter(repo repository.Repository, interval time.Duration, logger *zap.Logger) *Counter {
	if interval <= 0 {
		logger.Warn("invalid flush interval, using default",
			zap.Duration("interval", interval), zap.Duration("default", DefaultFlushInterval))
		interval = DefaultFlushInterval
	}
	return &Counter{
		repo:     repo,
		queue:    concurrentqueue.New(),
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Record queues one access to the row and returns the access time.
func (c *Counter) Record(id int64) time.Time {
	c.queue.Enqueue(id)
	return c.now()
}

// Pending returns the number of accesses not yet written.
func (c *Counter) Pending() int {
	return c.queue.Len()
}

// Flush writes every queued access. Accesses to rows that no longer exist are
// dropped, other failed rows are queued again for the next Flush.
func (c *Counter) Flush(ctx context.Context) {
	ids := c.queue.DequeueAll()
	if len(ids) == 0 {
		return
	}

	counts := make(map[int64]int64, len(ids))
	order := make([]int64, 0, len(ids))
	for _, id := range ids {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	at := c.now()
	var retry []int64
	for _, id := range order {
		err := c.repo.Increment(ctx, id, counts[id], at)
		switch {
		case err == nil:
			metrics.AccessesFlushedTotal.Add(float64(counts[id]))
		case errors.Is(err, repository.ErrRecordNotFound):
			c.logger.Warn("dropped accesses to missing row",
				zap.Int64("id", id), zap.Int64("accesses", counts[id]))
		default:
			c.logger.Error("failed to increment access counter",
				zap.Int64("id", id), zap.Int64("accesses", counts[id]), zap.Error(err))
			for i := int64(0); i < counts[id]; i++ {
				retry = append(retry, id)
			}
		}
	}
	if len(retry) > 0 {
		c.queue.BatchEnqueue(retry)
	}
}

// Run flushes every interval until ctx is done, then flushes once more.
func (c *Counter) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Flush(ctx)
		case <-ctx.Done():
			// ctx is already cancelled, the last flush needs its own
			flushCtx, cancel := context.WithTimeout(context.Background(), c.interval)
			c.Flush(flushCtx)
			cancel()
			if n := c.Pending(); n > 0 {
				c.logger.Error("accesses lost on shutdown", zap.Int("accesses", n))
			}
			return
		}
	}
}
