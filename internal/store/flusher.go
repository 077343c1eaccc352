package store

import (
	"context"
	"log"
	"sync"
)

// Flusher is a small worker pool that writes dirty stores back to storage in the
// background. Requests for a store that is already queued are coalesced.
type Flusher struct {
	size int
	jobs chan string

	mu      sync.Mutex
	pending map[string]bool
	targets map[string]Flushable
}

// NewFlusher creates a flusher with size workers and a queue of queueSize store names.
func NewFlusher(size, queueSize int) *Flusher {
	if size <= 0 {
		size = 1
	}
	if queueSize <= 0 {
		queueSize = size
	}
	return &Flusher{
		size:    size,
		jobs:    make(chan string, queueSize),
		pending: make(map[string]bool),
		targets: make(map[string]Flushable),
	}
}

// Register makes stores known to the flusher by name.
func (f *Flusher) Register(stores ...Flushable) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range stores {
		f.targets[s.Name()] = s
	}
}

// Schedule queues a flush of the named store. It never blocks: when the queue is full
// the request is dropped and left to the periodic sweep.
func (f *Flusher) Schedule(name string) {
	f.mu.Lock()
	if f.pending[name] {
		f.mu.Unlock()
		return
	}
	f.pending[name] = true
	f.mu.Unlock()

	select {
	case f.jobs <- name:
	default:
		f.mu.Lock()
		delete(f.pending, name)
		f.mu.Unlock()
		log.Printf("flush queue full, dropping flush of %s until next sweep", name)
	}
}

// Start launches the worker goroutines.
func (f *Flusher) Start(ctx context.Context) {
	for i := 0; i < f.size; i++ {
		go f.worker(ctx, i)
	}
}

// Jobs returns the jobs channel for testing.
func (f *Flusher) Jobs() chan string {
	return f.jobs
}

func (f *Flusher) worker(ctx context.Context, id int) {
	log.Printf("Flush worker %d started", id)
	for {
		select {
		case name := <-f.jobs:
			f.process(ctx, name)
		case <-ctx.Done():
			log.Printf("Flush worker %d shutting down", id)
			return
		}
	}
}

func (f *Flusher) process(ctx context.Context, name string) {
	f.mu.Lock()
	delete(f.pending, name)
	target, ok := f.targets[name]
	f.mu.Unlock()

	if !ok {
		log.Printf("flush requested for unknown store %s", name)
		return
	}
	if err := target.Flush(ctx); err != nil {
		log.Printf("Error flushing store %s: %v", name, err)
	}
}
