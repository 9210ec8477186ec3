package watch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestChangeCoalescer_BurstDeliversLatestEventOnce(t *testing.T) {
	var mu sync.Mutex
	var delivered []ChangeEvent
	c := newChangeCoalescer(50*time.Millisecond, func(e ChangeEvent) {
		mu.Lock()
		delivered = append(delivered, e)
		mu.Unlock()
	})
	defer c.Close()

	for i := 0; i < 9; i++ {
		c.Absorb(ChangeEvent{Path: "notes.md", ChangeType: "write"})
		time.Sleep(5 * time.Millisecond)
	}
	c.Absorb(ChangeEvent{Path: "notes.md", ChangeType: "remove"})

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 {
		t.Fatalf("expected 1 coalesced delivery, got %d", len(delivered))
	}
	if delivered[0].ChangeType != "remove" {
		t.Errorf("expected the latest event to win, got %q", delivered[0].ChangeType)
	}
}

func TestChangeCoalescer_CloseCancelsPending(t *testing.T) {
	var deliveries atomic.Int32
	c := newChangeCoalescer(50*time.Millisecond, func(ChangeEvent) {
		deliveries.Add(1)
	})

	c.Absorb(ChangeEvent{Path: "notes.md", ChangeType: "write"})
	c.Close()

	time.Sleep(150 * time.Millisecond)

	if got := deliveries.Load(); got != 0 {
		t.Errorf("expected no deliveries after Close, got %d", got)
	}
}

func TestChangeCoalescer_DeliversAgainAfterQuietPeriod(t *testing.T) {
	var deliveries atomic.Int32
	c := newChangeCoalescer(30*time.Millisecond, func(ChangeEvent) {
		deliveries.Add(1)
	})
	defer c.Close()

	c.Absorb(ChangeEvent{Path: "a.md", ChangeType: "write"})
	time.Sleep(100 * time.Millisecond)
	c.Absorb(ChangeEvent{Path: "b.md", ChangeType: "write"})
	time.Sleep(100 * time.Millisecond)

	if got := deliveries.Load(); got != 2 {
		t.Errorf("expected 2 deliveries across quiet periods, got %d", got)
	}
}
