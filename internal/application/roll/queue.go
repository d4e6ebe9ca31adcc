package roll

import (
	"context"
	"sync"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/ports"
)

type appendRequest struct {
	ctx    context.Context
	event  domain.RollEvent
	result chan error
}

// appendQueue funnels every ledger mutation through one goroutine, so at
// most one read-modify-write is in flight per process.
type appendQueue struct {
	store    ports.LedgerStore
	logger   ports.Logger
	requests chan appendRequest
	closed   chan struct{}
	stopped  chan struct{}

	mu       sync.RWMutex
	isClosed bool
}

func newAppendQueue(store ports.LedgerStore, logger ports.Logger, depth int) *appendQueue {
	if depth < 0 {
		depth = 0
	}
	q := &appendQueue{
		store:    store,
		logger:   logger,
		requests: make(chan appendRequest, depth),
		closed:   make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *appendQueue) run() {
	defer close(q.stopped)
	for {
		select {
		case req := <-q.requests:
			req.result <- q.write(req)
		case <-q.closed:
			// Drain what was accepted before Close.
			for {
				select {
				case req := <-q.requests:
					req.result <- q.write(req)
				default:
					return
				}
			}
		}
	}
}

func (q *appendQueue) write(req appendRequest) error {
	if err := req.ctx.Err(); err != nil {
		return err
	}
	day := req.event.Day()
	if err := q.store.EnsureDay(req.ctx, day); err != nil {
		return err
	}
	if err := q.store.Append(req.ctx, day, req.event); err != nil {
		q.logger.Error("append roll", err, map[string]interface{}{"day": day.String()})
		return err
	}
	q.logger.Debug("roll recorded", map[string]interface{}{
		"day":   day.String(),
		"dice":  req.event.Dice.Name,
		"total": req.event.Total,
	})
	return nil
}

// Submit enqueues event and waits until it is written or ctx ends.
// A request abandoned by its context may still be written later.
func (q *appendQueue) Submit(ctx context.Context, event domain.RollEvent) error {
	req := appendRequest{ctx: ctx, event: event, result: make(chan error, 1)}

	q.mu.RLock()
	if q.isClosed {
		q.mu.RUnlock()
		return domain.ErrQueueClosed
	}
	select {
	case q.requests <- req:
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	}
	q.mu.RUnlock()

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting requests and waits for accepted ones to finish.
func (q *appendQueue) Close() {
	q.mu.Lock()
	if !q.isClosed {
		q.isClosed = true
		close(q.closed)
	}
	q.mu.Unlock()
	<-q.stopped
}
