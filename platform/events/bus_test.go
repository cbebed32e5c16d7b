package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestInMemoryBus_PublishSync_DeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var got []string
	bus.Subscribe("catalog.product.updated", HandlerFunc(func(_ context.Context, event Event) error {
		got = append(got, event.EventName())
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "catalog.product.updated"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "catalog.product.updated" {
		t.Fatalf("expected one delivery, got %v", got)
	}
}

func TestInMemoryBus_PublishSync_IgnoresOtherEventNames(t *testing.T) {
	bus := NewInMemoryBus(nil)

	calls := 0
	bus.Subscribe("sales.sale.submitted", HandlerFunc(func(context.Context, Event) error {
		calls++
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "catalog.extra.updated"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no deliveries, got %d", calls)
	}
}

func TestInMemoryBus_PublishSync_JoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)
	wantErr := errors.New("handler failed")

	bus.Subscribe("sales.sale.submitted", HandlerFunc(func(context.Context, Event) error {
		return wantErr
	}))
	bus.Subscribe("sales.sale.submitted", HandlerFunc(func(context.Context, Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "sales.sale.submitted"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
}

func TestInMemoryBus_Unsubscribe_StopsDelivery(t *testing.T) {
	bus := NewInMemoryBus(nil)

	calls := 0
	bus.Subscribe("catalog.category.deleted", HandlerFunc(func(context.Context, Event) error {
		calls++
		return nil
	}))
	bus.Unsubscribe("catalog.category.deleted")

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "catalog.category.deleted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no deliveries after unsubscribe, got %d", calls)
	}
}

func TestInMemoryBus_Publish_Async(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("reports.daily.generated", HandlerFunc(func(context.Context, Event) error {
		wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "reports.daily.generated"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async handler was never invoked")
	}
}
