package client

import (
	"sync"
	"time"

	"github.com/qrdine/qr-menu/models"
)

// OrderWatcher polls one order on a fixed interval (the guest tracking
// page). Each successful poll replaces the previous snapshot wholesale; a
// failed poll surfaces through OnError and the loop retries on the next
// tick. Stop releases the timer; no polls fire after it returns.
type OrderWatcher struct {
	Client   *Client
	OrderID  uint
	Interval time.Duration

	OnUpdate func(models.Order)
	OnError  func(error)

	stopChan chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	failures int
}

func NewOrderWatcher(c *Client, orderID uint, interval time.Duration) *OrderWatcher {
	return &OrderWatcher{
		Client:   c,
		OrderID:  orderID,
		Interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (w *OrderWatcher) Start() {
	go func() {
		w.poll()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.poll()
			case <-w.stopChan:
				return
			}
		}
	}()
}

func (w *OrderWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
}

// ConsecutiveFailures reports how many polls in a row have failed; callers
// can layer backoff on top if they want more than retry-on-next-tick.
func (w *OrderWatcher) ConsecutiveFailures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failures
}

func (w *OrderWatcher) poll() {
	order, err := w.Client.GetOrder(w.OrderID)
	if err != nil {
		w.mu.Lock()
		w.failures++
		w.mu.Unlock()
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}

	w.mu.Lock()
	w.failures = 0
	w.mu.Unlock()
	if w.OnUpdate != nil {
		w.OnUpdate(order)
	}
}

// BoardWatcher polls the staff order board. Every poll re-fetches the full
// unfiltered listing and de-duplicates it by order id (a filtered re-fetch
// can return an order twice when its status changes mid-query). The
// new-order notification fires only when the order count increased between
// two consecutive successful polls, never on the first poll after load, so
// a page refresh does not replay a notification storm.
type BoardWatcher struct {
	Client       *Client
	StatusFilter string // narrows OnSnapshot; the notification count is always unfiltered
	Interval     time.Duration

	OnSnapshot  func([]models.Order)
	OnNewOrders func(count, previous int)
	OnError     func(error)

	stopChan chan struct{}
	stopOnce sync.Once

	mu          sync.Mutex
	hasBaseline bool
	lastCount   int
	failures    int
}

func NewBoardWatcher(c *Client, statusFilter string, interval time.Duration) *BoardWatcher {
	return &BoardWatcher{
		Client:       c,
		StatusFilter: statusFilter,
		Interval:     interval,
		stopChan:     make(chan struct{}),
	}
}

func (w *BoardWatcher) Start() {
	go func() {
		w.poll()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.poll()
			case <-w.stopChan:
				return
			}
		}
	}()
}

func (w *BoardWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
}

func (w *BoardWatcher) ConsecutiveFailures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failures
}

func (w *BoardWatcher) poll() {
	orders, err := w.Client.ListOrders("")
	if err != nil {
		// The baseline survives a failed poll: the next comparison is
		// still between two successful polls.
		w.mu.Lock()
		w.failures++
		w.mu.Unlock()
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}

	deduped := dedupeByID(orders)

	w.mu.Lock()
	w.failures = 0
	notify := w.hasBaseline && len(deduped) > w.lastCount
	previous := w.lastCount
	w.lastCount = len(deduped)
	w.hasBaseline = true
	w.mu.Unlock()

	if notify && w.OnNewOrders != nil {
		w.OnNewOrders(len(deduped), previous)
	}

	if w.OnSnapshot != nil {
		snapshot := deduped
		if w.StatusFilter != "" {
			snapshot = filterByStatus(deduped, w.StatusFilter)
		}
		w.OnSnapshot(snapshot)
	}
}

// dedupeByID keeps the first occurrence of each order id, preserving order.
func dedupeByID(orders []models.Order) []models.Order {
	seen := make(map[uint]bool, len(orders))
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if seen[order.ID] {
			continue
		}
		seen[order.ID] = true
		out = append(out, order)
	}
	return out
}

func filterByStatus(orders []models.Order, status string) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}
