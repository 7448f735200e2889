package observe

import "testing"

func TestHubPublishOrder(t *testing.T) {
	var h Hub[int]
	var got []int
	cancel := h.Subscribe(func(v int) { got = append(got, v) })
	for i := 1; i <= 3; i++ {
		h.Publish(i)
	}
	cancel()
	h.Publish(4)

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected values: %v", got)
	}
	if h.Len() != 0 {
		t.Fatalf("expected no subscribers after cancel, got %d", h.Len())
	}
}

func TestHubCancelIsIdempotent(t *testing.T) {
	var h Hub[string]
	cancelA := h.Subscribe(func(string) {})
	h.Subscribe(func(string) {})
	cancelA()
	cancelA()
	if h.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", h.Len())
	}
}

func TestMailboxKeepsLatest(t *testing.T) {
	mb := NewMailbox[int]()
	mb.Put(1)
	mb.Put(2)
	mb.Put(3)

	select {
	case v := <-mb.C():
		if v != 3 {
			t.Fatalf("expected latest value 3, got %d", v)
		}
	default:
		t.Fatalf("expected a value in the mailbox")
	}
	select {
	case v := <-mb.C():
		t.Fatalf("expected empty mailbox, got %d", v)
	default:
	}
}
