package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"swish-api/internal/models"
)

// CompletionPublisher publishes game completion events to subscribers
type CompletionPublisher interface {
	PublishCompletion(ctx context.Context, event models.CompletionEvent) error
}

// Pool dispatches game completion events asynchronously so the PATCH
// handler never waits on, or fails because of, the pub/sub broker
type Pool struct {
	jobs        chan models.CompletionEvent
	workerCount int
	publisher   CompletionPublisher
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	metrics     *PoolMetrics
}

// PoolMetrics tracks dispatch outcomes
type PoolMetrics struct {
	mu           sync.RWMutex
	published    int64
	failed       int64
	backpressure int64
}

// NewPool creates a new event dispatch pool
func NewPool(workerCount, queueSize int, publisher CompletionPublisher) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		jobs:        make(chan models.CompletionEvent, queueSize),
		workerCount: workerCount,
		publisher:   publisher,
		ctx:         ctx,
		cancel:      cancel,
		metrics:     &PoolMetrics{},
	}
}

// Start launches the worker goroutines
func (p *Pool) Start() {
	for i := 1; i <= p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Printf("event pool started: %d workers, queue size %d", p.workerCount, cap(p.jobs))
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return

		case event, ok := <-p.jobs:
			if !ok {
				return
			}
			p.dispatch(id, event)
		}
	}
}

func (p *Pool) dispatch(workerID int, event models.CompletionEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event pool worker #%d panic recovered: %v (game %d)", workerID, r, event.GameID)
			p.metrics.incrementFailed()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.publisher.PublishCompletion(ctx, event); err != nil {
		log.Printf("event pool worker #%d failed to publish game %d completion: %v", workerID, event.GameID, err)
		p.metrics.incrementFailed()
		return
	}

	p.metrics.incrementPublished()
}

// Submit enqueues an event without blocking. When the queue is full the
// event is dropped; clients fall back to refetching leaderboards.
func (p *Pool) Submit(event models.CompletionEvent) error {
	select {
	case p.jobs <- event:
		return nil

	default:
		p.metrics.incrementBackpressure()
		return fmt.Errorf("event pool queue full (backpressure)")
	}
}

// Shutdown stops the pool, draining queued events up to the timeout
func (p *Pool) Shutdown(timeout time.Duration) error {
	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		published, failed, dropped := p.metrics.Snapshot()
		log.Printf("event pool drained: published=%d failed=%d dropped=%d", published, failed, dropped)
		return nil

	case <-time.After(timeout):
		p.cancel()
		return fmt.Errorf("event pool shutdown timed out after %v", timeout)
	}
}

// Metrics returns the pool's metrics
func (p *Pool) Metrics() *PoolMetrics {
	return p.metrics
}

// Snapshot returns the published, failed and backpressure counters
func (pm *PoolMetrics) Snapshot() (published, failed, backpressure int64) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.published, pm.failed, pm.backpressure
}

func (pm *PoolMetrics) incrementPublished() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.published++
}

func (pm *PoolMetrics) incrementFailed() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.failed++
}

func (pm *PoolMetrics) incrementBackpressure() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.backpressure++
}
