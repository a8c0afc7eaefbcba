package event

import (
	"sync"
	"testing"
)

type testEvent struct {
	Base
	payload string
}

func newTestEvent(eventType, payload string) testEvent {
	return testEvent{Base: NewBase(eventType), payload: payload}
}

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("test.event", func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe("cell.focused", func(e Event) {
		received = e
	})

	bus.Publish(newTestEvent("cell.focused", "r1:price"))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	if received.EventType() != "cell.focused" {
		t.Errorf("Expected event type 'cell.focused', got '%s'", received.EventType())
	}
	if got := received.(testEvent).payload; got != "r1:price" {
		t.Errorf("payload = %q, want %q", got, "r1:price")
	}
	if received.Timestamp().IsZero() {
		t.Error("NewBase should stamp the event")
	}
}

func TestBus_PublishOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wildcard") })
	bus.Subscribe("test.event", func(e Event) { order = append(order, "first") })
	bus.Subscribe("test.event", func(e Event) { order = append(order, "second") })

	bus.Publish(NewBase("test.event"))

	want := []string{"first", "second", "wildcard"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("other.event", func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})

	bus.Publish(NewBase("test.event"))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	callCount := 0
	id := bus.Subscribe("test.event", func(e Event) { callCount++ })

	bus.Publish(NewBase("test.event"))
	if !bus.Unsubscribe(id) {
		t.Fatal("Unsubscribe should return true for an existing subscription")
	}
	bus.Publish(NewBase("test.event"))

	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return false for an already removed subscription")
	}
	if bus.HandlerCount("test.event") != 0 {
		t.Errorf("HandlerCount = %d, want 0", bus.HandlerCount("test.event"))
	}
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	var secondID string
	secondCalls := 0
	bus.Subscribe("test.event", func(e Event) { bus.Unsubscribe(secondID) })
	secondID = bus.Subscribe("test.event", func(e Event) { secondCalls++ })

	bus.Publish(NewBase("test.event"))
	bus.Publish(NewBase("test.event"))

	// The first publish was already snapshotted when the second handler was removed.
	if secondCalls != 1 {
		t.Errorf("secondCalls = %d, want 1", secondCalls)
	}
}

func TestBus_RecoversPanicsByDefault(t *testing.T) {
	bus := NewBus()

	reached := false
	bus.Subscribe("test.event", func(e Event) { panic("boom") })
	bus.Subscribe("test.event", func(e Event) { reached = true })

	bus.Publish(NewBase("test.event"))

	if !reached {
		t.Error("a panicking handler should not block later handlers")
	}
}

func TestBus_WithPanicPropagation(t *testing.T) {
	bus := NewBus(WithPanicPropagation())
	bus.Subscribe("test.event", func(e Event) { panic("boom") })

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recover() = %v, want boom", r)
		}
	}()
	bus.Publish(NewBase("test.event"))
	t.Error("Publish should have panicked")
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("a", func(e Event) {})
	bus.Subscribe("b", func(e Event) {})
	bus.SubscribeAll(func(e Event) {})

	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after Clear, got %d", bus.SubscriptionCount())
	}
}

func TestBus_UniqueIDs(t *testing.T) {
	bus := NewBus()
	seen := make(map[string]bool)
	for range 100 {
		id := bus.Subscribe("test.event", func(e Event) {})
		if seen[id] {
			t.Fatalf("duplicate subscription id %q", id)
		}
		seen[id] = true
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("test.event", func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			bus.Publish(NewBase("test.event"))
		})
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("Expected 50 calls, got %d", count)
	}
}

func TestBus_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			id := bus.Subscribe("test.event", func(e Event) {})
			bus.Publish(NewBase("test.event"))
			bus.Unsubscribe(id)
		})
	}
	wg.Wait()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions, got %d", bus.SubscriptionCount())
	}
}
