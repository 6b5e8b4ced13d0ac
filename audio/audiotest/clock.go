package audiotest

import (
	"sync"
	"time"

	"github.com/simukka/journey-soundscape/audio"
)

// Clock is an audio.Timers whose time only moves on Advance. When Context
// is set its time follows the clock.
type Clock struct {
	Context *Context

	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*clockTimer
}

type clockTimer struct {
	clock *Clock
	at    time.Duration
	seq   int
	f     func()
	done  bool
}

// NewClock creates a clock driving ctx (which may be nil).
func NewClock(ctx *Context) *Clock {
	return &Clock{Context: ctx}
}

// AfterFunc implements audio.Timers.
func (c *Clock) AfterFunc(d time.Duration, f func()) audio.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &clockTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop implements audio.Timer.
func (t *clockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Now returns the elapsed clock time.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing due timers in order. Callbacks
// run without the clock lock held and may schedule further timers.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.setNow(target)
			c.mu.Unlock()
			return
		}
		next.done = true
		c.setNow(next.at)
		c.mu.Unlock()
		next.f()
	}
}

func (c *Clock) nextDue(target time.Duration) *clockTimer {
	var next *clockTimer
	live := c.timers[:0]
	for _, t := range c.timers {
		if t.done {
			continue
		}
		live = append(live, t)
		if t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	c.timers = live
	return next
}

func (c *Clock) setNow(now time.Duration) {
	c.now = now
	if c.Context != nil {
		c.Context.mu.Lock()
		if s := now.Seconds(); s > c.Context.Time {
			c.Context.Time = s
		}
		c.Context.mu.Unlock()
	}
}
