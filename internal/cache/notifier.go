package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nikolayk812/shopcore/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Sink delivers one invalidation to a downstream consumer.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, inv domain.Invalidation) error
}

// Notifier buffers invalidations and fans them out to sinks from a single
// background worker. Publish never blocks: when the buffer is full the signal
// is dropped and logged.
type Notifier struct {
	log            *slog.Logger
	sinks          []Sink
	deliverTimeout time.Duration

	queue chan domain.Invalidation
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewNotifier(log *slog.Logger, buffer int, sinks ...Sink) (*Notifier, error) {
	if buffer <= 0 {
		return nil, fmt.Errorf("buffer must be positive, got %d", buffer)
	}

	return &Notifier{
		log:            log,
		sinks:          sinks,
		deliverTimeout: 2 * time.Second,
		queue:          make(chan domain.Invalidation, buffer),
		done:           make(chan struct{}),
	}, nil
}

func (n *Notifier) Publish(inv domain.Invalidation) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.log.Warn("invalidation dropped, notifier closed", "products", len(inv.ProductIDs))
		return
	}

	select {
	case n.queue <- inv:
	default:
		n.log.Warn("invalidation dropped, buffer full", "products", len(inv.ProductIDs), "all", inv.All)
	}
}

// Run delivers queued invalidations until Close is called and the queue is
// drained. It must be started exactly once.
func (n *Notifier) Run() {
	defer close(n.done)

	for inv := range n.queue {
		n.deliver(inv)
	}
}

// Close stops accepting invalidations and waits for Run to drain the queue
// or for ctx to expire.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notifier drain: %w", ctx.Err())
	}
}

func (n *Notifier) deliver(inv domain.Invalidation) {
	ctx, cancel := context.WithTimeout(context.Background(), n.deliverTimeout)
	defer cancel()

	var g errgroup.Group
	for _, sink := range n.sinks {
		g.Go(func() error {
			if err := sink.Deliver(ctx, inv); err != nil {
				return fmt.Errorf("%s: %w", sink.Name(), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		n.log.Error("invalidation delivery failed", "err", err, "products", len(inv.ProductIDs), "all", inv.All)
	}
}
