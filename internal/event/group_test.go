package event

import "testing"

func TestGroup_ReleaseUnsubscribes(t *testing.T) {
	bus := NewBus()
	group := NewGroup()

	calls := 0
	group.Subscribe(bus, "cell.focused", func(e Event) { calls++ })
	group.Subscribe(bus, "range.changed", func(e Event) { calls++ })

	if group.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", group.Len())
	}

	bus.Publish(NewBase("cell.focused"))
	group.Release()
	bus.Publish(NewBase("cell.focused"))
	bus.Publish(NewBase("range.changed"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", bus.SubscriptionCount())
	}
	if group.Len() != 0 || !group.Released() {
		t.Errorf("group not cleared after Release")
	}
}

func TestGroup_ReleaseOrder(t *testing.T) {
	group := NewGroup()

	var order []int
	for i := range 3 {
		group.Add(func() { order = append(order, i) })
	}
	group.Release()

	want := []int{2, 1, 0}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("release order = %v, want %v", order, want)
		}
	}
}

func TestGroup_ReleaseIsIdempotent(t *testing.T) {
	group := NewGroup()
	calls := 0
	group.Add(func() { calls++ })

	group.Release()
	group.Release()

	if calls != 1 {
		t.Errorf("teardown ran %d times, want 1", calls)
	}
}

func TestGroup_AfterRelease(t *testing.T) {
	bus := NewBus()
	group := NewGroup()
	group.Release()

	group.Subscribe(bus, "cell.focused", func(e Event) {})
	if bus.SubscriptionCount() != 0 {
		t.Error("Subscribe after Release should not register")
	}

	ran := false
	group.Add(func() { ran = true })
	if !ran {
		t.Error("Add after Release should run the teardown immediately")
	}

	group.Add(nil)
}
