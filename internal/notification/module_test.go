package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"pos_admin_backend/internal/events"
	"pos_admin_backend/internal/notification/sse"
	"pos_admin_backend/platform/logger"
)

func TestDomainEventsReachSubscribedClients(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	mod := NewModule(bus, log)

	ch, cancel := mod.Hub().Subscribe()
	defer cancel()

	if err := bus.PublishSync(context.Background(), events.ProductUpdated{
		BaseEvent: events.NewBaseEvent(),
		ProductID: uuid.New(),
		Name:      "Waffle Clasico",
	}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	select {
	case inv := <-ch:
		if inv.Topic != "products" {
			t.Fatalf("topic = %q, want products", inv.Topic)
		}
		if inv.Reason != "catalog.product.updated" {
			t.Fatalf("reason = %q", inv.Reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("invalidation not delivered")
	}
}

func TestSaleEventsInvalidateSalesTopic(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	mod := NewModule(bus, log)

	ch, cancel := mod.Hub().Subscribe()
	defer cancel()

	if err := bus.PublishSync(context.Background(), events.SaleSubmitted{
		BaseEvent: events.NewBaseEvent(),
		SaleID:    uuid.New(),
	}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	select {
	case inv := <-ch:
		if inv.Topic != "sales" {
			t.Fatalf("topic = %q, want sales", inv.Topic)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("invalidation not delivered")
	}
}

func TestCancelledClientStopsReceiving(t *testing.T) {
	log := logger.New("test")
	hub := sse.NewHub(log)

	ch, cancel := hub.Subscribe()
	if hub.ClientCount() != 1 {
		t.Fatalf("client count = %d, want 1", hub.ClientCount())
	}

	cancel()
	if hub.ClientCount() != 0 {
		t.Fatalf("client count after cancel = %d, want 0", hub.ClientCount())
	}
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after cancel")
	}

	// A second cancel must be a no-op.
	cancel()

	hub.Broadcast(sse.Invalidation{Topic: "sales"})
}

func TestBroadcastSkipsFullClients(t *testing.T) {
	log := logger.New("test")
	hub := sse.NewHub(log)

	_, cancelSlow := hub.Subscribe()
	defer cancelSlow()
	fast, cancelFast := hub.Subscribe()
	defer cancelFast()

	// Saturate the slow client's buffer, then one more broadcast.
	for i := 0; i < 40; i++ {
		hub.Broadcast(sse.Invalidation{Topic: "products"})
	}

	delivered := 0
	for len(fast) > 0 {
		<-fast
		delivered++
	}
	if delivered != 32 {
		t.Fatalf("fast client buffered %d invalidations, want full buffer of 32", delivered)
	}
}
