package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellquiccom/sellquicks-sub000/internal/models"
	"github.com/sellquiccom/sellquicks-sub000/internal/orders"
)

func TestHubDeliversToVendorAndPlatform(t *testing.T) {
	hub := NewHub()

	vendorCh, cancelVendor := hub.Subscribe(7)
	defer cancelVendor()
	adminCh, cancelAdmin := hub.Subscribe(PlatformWide)
	defer cancelAdmin()
	otherCh, cancelOther := hub.Subscribe(8)
	defer cancelOther()

	hub.Publish(OrderEvent{Type: "created", Order: models.Order{ID: 1, VendorID: 7, Status: orders.StatusAwaitingPayment}})

	ev := <-vendorCh
	assert.Equal(t, int64(1), ev.Order.ID)
	ev = <-adminCh
	assert.Equal(t, "created", ev.Type)

	select {
	case <-otherCh:
		t.Fatal("vendor 8 must not receive vendor 7 events")
	default:
	}
}

func TestHubCancelReleasesSubscription(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe(7)
	require.Equal(t, 1, hub.SubscriberCount(7))

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount(7))

	// Cancelling twice is safe.
	cancel()
	assert.Equal(t, 0, hub.SubscriberCount(7))

	// Publishing after teardown must not panic.
	hub.Publish(OrderEvent{Type: "created", Order: models.Order{VendorID: 7}})
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(7)
	defer cancel()

	// Overflow the buffer; Publish must never block.
	for i := 0; i < 40; i++ {
		hub.Publish(OrderEvent{Type: "created", Order: models.Order{ID: int64(i), VendorID: 7}})
	}
	assert.Equal(t, 16, len(ch))
}
