package debounce

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestChannelRestartOnChange(t *testing.T) {
	c := NewChannel("range", 200*time.Millisecond, 0)

	first := c.Input(10, t0)
	second := c.Input(20, t0.Add(50*time.Millisecond))

	if c.Fire(first) {
		t.Error("Expected superseded input to be discarded")
	}
	if c.Value() != 0 || c.Phase() != Pending {
		t.Errorf("Expected pending with old value, got %v/%v", c.Value(), c.Phase())
	}
	if !c.Fire(second) {
		t.Fatal("Expected latest input to fire")
	}
	if c.Value() != 20 || c.Phase() != Fired {
		t.Errorf("Expected fired 20, got %v/%v", c.Value(), c.Phase())
	}
	if c.Fire(second) {
		t.Error("Expected a second fire of the same input to do nothing")
	}
}

func TestChannelDeadline(t *testing.T) {
	c := NewChannel("query", 100*time.Millisecond, "")
	c.Input("mel", t0)

	if c.Expire(t0.Add(99 * time.Millisecond)) {
		t.Error("Expected nothing before the deadline")
	}
	c.Input("melt", t0.Add(90*time.Millisecond))
	if c.Expire(t0.Add(150 * time.Millisecond)) {
		t.Error("Expected deadline restarted by new input")
	}
	if !c.Expire(t0.Add(190 * time.Millisecond)) {
		t.Fatal("Expected fire at the restarted deadline")
	}
	if c.Value() != "melt" {
		t.Errorf("Expected melt, got %q", c.Value())
	}
}

func TestChannelCancel(t *testing.T) {
	c := NewChannel("query", 100*time.Millisecond, "a")
	seq := c.Input("b", t0)
	c.Cancel()

	if c.Phase() != Idle {
		t.Errorf("Expected idle, got %v", c.Phase())
	}
	if c.Fire(seq) || c.Value() != "a" {
		t.Errorf("Expected cancelled input never published, got %q", c.Value())
	}
}

func TestChannelScheduleDeliversSeq(t *testing.T) {
	c := NewChannel("range", time.Millisecond, 0)
	cmd := c.Push(5, t0)
	if cmd == nil {
		t.Fatal("Expected a tick command")
	}
	msg, ok := cmd().(FiredMsg)
	if !ok {
		t.Fatalf("Expected FiredMsg, got %T", msg)
	}
	if msg.Channel != "range" || !c.Fire(msg.Seq) {
		t.Errorf("Expected tick to fire the channel, got %+v", msg)
	}
}

func TestQuerySettles(t *testing.T) {
	q := NewQuery(100*time.Millisecond, 400*time.Millisecond)
	if !q.Settled() {
		t.Error("Expected fresh debouncer to be settled on the empty query")
	}

	q.Input("가", t0)
	q.Input("가나", t0.Add(30*time.Millisecond))
	primarySeq := q.Primary.seq
	fallbackSeq := q.Fallback.seq

	q.Fire(FiredMsg{Channel: QueryChannel, Seq: primarySeq})
	if q.Text() != "가나" {
		t.Errorf("Expected primary text 가나, got %q", q.Text())
	}
	if q.Settled() {
		t.Error("Expected fallback still pending")
	}

	q.Fire(FiredMsg{Channel: ChoseongChannel, Seq: fallbackSeq})
	if !q.Settled() {
		t.Error("Expected both timers converged")
	}

	q.Input("가나다", t0.Add(time.Second))
	q.Fire(FiredMsg{Channel: QueryChannel, Seq: q.Primary.seq})
	if q.Settled() {
		t.Error("Expected fallback to lag behind the new text")
	}

	q.Reset("")
	if !q.Settled() || q.Text() != "" {
		t.Error("Expected reset to settle both channels")
	}
}

func TestQueryIgnoresStaleTicks(t *testing.T) {
	q := NewQuery(100*time.Millisecond, 400*time.Millisecond)
	q.Input("a", t0)
	stale := q.Fallback.seq
	q.Input("ab", t0.Add(10*time.Millisecond))

	if q.Fire(FiredMsg{Channel: ChoseongChannel, Seq: stale}) {
		t.Error("Expected stale fallback tick ignored")
	}
	if q.Fire(FiredMsg{Channel: "other", Seq: 1}) {
		t.Error("Expected unknown channel ignored")
	}
}
