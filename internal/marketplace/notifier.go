// Package marketplace is the integration boundary toward outbound
// price/stock synchronization (Ozon, Wildberries). The back office only
// signals that a product changed; the actual marketplace adapters consume
// the signal elsewhere.
package marketplace

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier receives fire-and-forget product change signals. Implementations
// must never block the caller for long and must never surface errors into
// the transaction that produced the change.
type Notifier interface {
	NotifyProductChanged(tenantID, productID uint)
	Close()
}

type change struct {
	tenantID  uint
	productID uint
}

// AsyncNotifier decouples the order/catalog transactions from the sync sink
// with a buffered channel and a single drain goroutine. A full buffer drops
// the signal with a warning instead of blocking a request.
type AsyncNotifier struct {
	sink    func(tenantID, productID uint)
	changes chan change
	logger  *zap.Logger
	wg      sync.WaitGroup
	once    sync.Once
}

// NewAsyncNotifier starts the drain goroutine. sink is invoked outside any
// request transaction; with a nil sink changes are only logged.
func NewAsyncNotifier(sink func(tenantID, productID uint), buffer int, logger *zap.Logger) *AsyncNotifier {
	if buffer <= 0 {
		buffer = 256
	}
	n := &AsyncNotifier{
		sink:    sink,
		changes: make(chan change, buffer),
		logger:  logger,
	}
	n.wg.Add(1)
	go n.drain()
	return n
}

func (n *AsyncNotifier) drain() {
	defer n.wg.Done()
	for c := range n.changes {
		if n.sink != nil {
			n.sink(c.tenantID, c.productID)
		}
		n.logger.Debug("product change dispatched to marketplace sync",
			zap.Uint("tenant_id", c.tenantID),
			zap.Uint("product_id", c.productID),
		)
	}
}

// NotifyProductChanged enqueues a change signal. Never blocks: when the
// buffer is full the signal is dropped and logged, because losing one sync
// hint must not fail an order.
func (n *AsyncNotifier) NotifyProductChanged(tenantID, productID uint) {
	select {
	case n.changes <- change{tenantID: tenantID, productID: productID}:
	default:
		n.logger.Warn("marketplace sync buffer full, dropping change signal",
			zap.Uint("tenant_id", tenantID),
			zap.Uint("product_id", productID),
		)
	}
}

// Close stops the drain goroutine after the queue empties.
func (n *AsyncNotifier) Close() {
	n.once.Do(func() {
		close(n.changes)
	})
	n.wg.Wait()
}

// NopNotifier discards all signals. Used when no marketplace sync is wired.
type NopNotifier struct{}

func (NopNotifier) NotifyProductChanged(uint, uint) {}
func (NopNotifier) Close()                          {}
