// Package debounce implements restart-on-change debouncing as an explicit
// state machine per channel. Timers are bubbletea ticks: a channel hands
// out a command that delivers a FiredMsg after its delay, and a fire whose
// sequence number is no longer current is discarded.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is the state of a channel
type Phase int

const (
	Idle Phase = iota
	Pending
	Fired
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Fired:
		return "fired"
	default:
		return "unknown"
	}
}

// FiredMsg is delivered when a channel's delay elapses
type FiredMsg struct {
	Channel string
	Seq     uint64
}

// Channel debounces values of type T. Only the value present when the
// delay elapses without further input is published.
type Channel[T comparable] struct {
	name     string
	delay    time.Duration
	phase    Phase
	seq      uint64
	pending  T
	value    T
	deadline time.Time
}

// NewChannel creates an idle channel whose published value is initial
func NewChannel[T comparable](name string, delay time.Duration, initial T) *Channel[T] {
	return &Channel[T]{
		name:  name,
		delay: delay,
		value: initial,
	}
}

// Name identifies the channel in FiredMsg
func (c *Channel[T]) Name() string { return c.name }

// Delay is the settle time of the channel
func (c *Channel[T]) Delay() time.Duration { return c.delay }

// Phase returns the current state
func (c *Channel[T]) Phase() Phase { return c.phase }

// Value returns the last published value
func (c *Channel[T]) Value() T { return c.value }

// PendingValue returns the value waiting for the delay, if any
func (c *Channel[T]) PendingValue() (T, bool) {
	return c.pending, c.phase == Pending
}

// Deadline returns when the pending value will be published
func (c *Channel[T]) Deadline() time.Time { return c.deadline }

// Input records a new value and restarts the delay. The returned sequence
// number identifies this input; earlier ones become stale.
func (c *Channel[T]) Input(v T, now time.Time) uint64 {
	c.seq++
	c.pending = v
	c.phase = Pending
	c.deadline = now.Add(c.delay)
	return c.seq
}

// Fire publishes the pending value if seq is still the latest input. It
// reports whether anything was published.
func (c *Channel[T]) Fire(seq uint64) bool {
	if c.phase != Pending || seq != c.seq {
		return false
	}
	c.value = c.pending
	c.phase = Fired
	return true
}

// Expire fires the pending value if its deadline has passed
func (c *Channel[T]) Expire(now time.Time) bool {
	if c.phase != Pending || now.Before(c.deadline) {
		return false
	}
	return c.Fire(c.seq)
}

// Flush publishes the pending value immediately
func (c *Channel[T]) Flush() bool {
	return c.Fire(c.seq)
}

// Cancel drops the pending value and returns to idle
func (c *Channel[T]) Cancel() {
	if c.phase == Pending {
		c.seq++
		c.phase = Idle
	}
}

// Reset publishes v at once, discarding anything pending
func (c *Channel[T]) Reset(v T) {
	c.seq++
	c.pending = v
	c.value = v
	c.phase = Fired
}

// Schedule returns the command that fires seq after the channel's delay
func (c *Channel[T]) Schedule(seq uint64) tea.Cmd {
	name := c.name
	return tea.Tick(c.delay, func(time.Time) tea.Msg {
		return FiredMsg{Channel: name, Seq: seq}
	})
}

// Push is Input followed by Schedule
func (c *Channel[T]) Push(v T, now time.Time) tea.Cmd {
	return c.Schedule(c.Input(v, now))
}
