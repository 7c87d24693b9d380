package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	QueryChannel    = "query"
	ChoseongChannel = "choseong"
	RangeChannel    = "range"
)

// Query drives the two timers fed by the search box: a short one for the
// primary matcher and a long one gating the initial-consonant fallback.
type Query struct {
	Primary  *Channel[string]
	Fallback *Channel[string]
}

// NewQuery creates the query debouncer
func NewQuery(primary, fallback time.Duration) *Query {
	return &Query{
		Primary:  NewChannel(QueryChannel, primary, ""),
		Fallback: NewChannel(ChoseongChannel, fallback, ""),
	}
}

// Input restarts both timers with the new text
func (q *Query) Input(text string, now time.Time) tea.Cmd {
	return tea.Batch(
		q.Primary.Push(text, now),
		q.Fallback.Push(text, now),
	)
}

// Fire routes a FiredMsg to the matching channel. It reports whether the
// published query changed state.
func (q *Query) Fire(msg FiredMsg) bool {
	switch msg.Channel {
	case QueryChannel:
		return q.Primary.Fire(msg.Seq)
	case ChoseongChannel:
		return q.Fallback.Fire(msg.Seq)
	}
	return false
}

// Text is the query the primary matcher should use
func (q *Query) Text() string {
	return q.Primary.Value()
}

// Settled reports whether both timers have published the same text and
// nothing is pending: the fallback may run.
func (q *Query) Settled() bool {
	return q.Primary.Phase() != Pending &&
		q.Fallback.Phase() != Pending &&
		q.Primary.Value() == q.Fallback.Value()
}

// Reset clears the query on both channels at once
func (q *Query) Reset(text string) {
	q.Primary.Reset(text)
	q.Fallback.Reset(text)
}
