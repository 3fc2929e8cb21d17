// Package events is the in-process fan-out behind the live order feeds.
// Dashboards subscribe, checkout and status updates publish, and every
// subscription must be released when its consumer goes away.
package events

import (
	"sync"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
)

// PlatformWide subscribes to every vendor's events (admin dashboards).
const PlatformWide int64 = 0

// OrderEvent is one change notification on the feed.
type OrderEvent struct {
	Type  string       `json:"type"` // created | status_changed
	Order models.Order `json:"order"`
}

// Hub maintains the set of active subscribers and fans events out to them.
type Hub struct {
	mu sync.Mutex

	// Subscribers keyed by vendor id; PlatformWide receives everything.
	subscribers map[int64]map[chan OrderEvent]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[int64]map[chan OrderEvent]bool)}
}

// Subscribe registers a listener for one vendor's events (or PlatformWide).
// The returned cancel func must be called when the consuming view is torn
// down, otherwise the listener leaks.
func (h *Hub) Subscribe(vendorID int64) (<-chan OrderEvent, func()) {
	// Buffered so a slow consumer does not stall the publisher.
	ch := make(chan OrderEvent, 16)

	h.mu.Lock()
	if h.subscribers[vendorID] == nil {
		h.subscribers[vendorID] = make(map[chan OrderEvent]bool)
	}
	h.subscribers[vendorID][ch] = true
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[vendorID], ch)
			if len(h.subscribers[vendorID]) == 0 {
				delete(h.subscribers, vendorID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to the order's vendor and to platform-wide
// subscribers. Delivery is best-effort: a full subscriber buffer drops the
// event for that subscriber rather than blocking the request.
func (h *Hub) Publish(event OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, key := range []int64{event.Order.VendorID, PlatformWide} {
		for ch := range h.subscribers[key] {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount reports active listeners for a vendor. Used by tests to
// verify teardown actually releases subscriptions.
func (h *Hub) SubscriberCount(vendorID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[vendorID])
}
