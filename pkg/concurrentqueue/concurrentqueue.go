package concurrentqueue

import (
	"sync"
)

// Queue is a goroutine-safe FIFO of row ids.
type Queue interface {
	Enqueue(id int64)
	BatchEnqueue(ids []int64)
	// DequeueAll removes and returns every queued id in order.
	DequeueAll() []int64
	Len() int
}

func New() Queue {
	return &fifo{
		queue: make([]int64, 0),
	}
}

type fifo struct {
	mu    sync.RWMutex
	queue []int64
}

func (c *fifo) Enqueue(id int64) {
	c.mu.Lock()
	c.queue = append(c.queue, id)
	c.mu.Unlock()
}

func (c *fifo) BatchEnqueue(ids []int64) {
	c.mu.Lock()
	c.queue = append(c.queue, ids...)
	c.mu.Unlock()
}

func (c *fifo) DequeueAll() []int64 {
	c.mu.Lock()
	ret := c.queue
	c.queue = make([]int64, 0, len(ret))
	c.mu.Unlock()
	return ret
}

func (c *fifo) Len() int {
	c.mu.RLock()
	len := len(c.queue)
	c.mu.RUnlock()
	return len
}
