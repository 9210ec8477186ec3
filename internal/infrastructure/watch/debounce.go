// Package watch re-runs extraction when watched documents change.
package watch

import (
	"sync"
	"time"
)

// changeCoalescer absorbs bursts of document change events (editors emit
// several writes per save) and delivers only the most recent one after a
// quiet window.
type changeCoalescer struct {
	window  time.Duration
	deliver func(ChangeEvent)

	mu      sync.Mutex
	timer   *time.Timer
	pending ChangeEvent
}

func newChangeCoalescer(window time.Duration, deliver func(ChangeEvent)) *changeCoalescer {
	return &changeCoalescer{window: window, deliver: deliver}
}

// Absorb records the event and restarts the quiet window. The latest event
// wins: a write followed by a remove of the same document is delivered as
// a remove.
func (c *changeCoalescer) Absorb(e ChangeEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = e
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, c.fire)
}

func (c *changeCoalescer) fire() {
	c.mu.Lock()
	e := c.pending
	c.mu.Unlock()

	c.deliver(e)
}

// Close cancels any pending delivery.
func (c *changeCoalescer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
}
