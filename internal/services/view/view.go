package view

import "errors"

// Refusals returned by controllers instead of starting a call.
var (
	ErrBusy      = errors.New("view: a request is already in flight")
	ErrClosed    = errors.New("view: closed")
	ErrWrongStep = errors.New("view: action not available in the current step")
)

// Kind selects how a Message is rendered.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is the single line of feedback a view shows after a submission.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Success builds a success message.
func Success(text string) Message { return Message{Kind: KindSuccess, Text: text} }

// Error builds an error message.
func Error(text string) Message { return Message{Kind: KindError, Text: text} }

// IsZero reports whether no message is set.
func (m Message) IsZero() bool { return m.Kind == "" && m.Text == "" }

// IsError reports whether m is an error message.
func (m Message) IsError() bool { return m.Kind == KindError }

// Gate is the busy/closed/generation bookkeeping of one view. The zero value
// is ready. It is not safe for concurrent use; callers hold their own lock.
type Gate struct {
	busy   bool
	closed bool
	gen    uint64
}

// Ready reports why a new call cannot start, or nil if it can.
func (g *Gate) Ready() error {
	switch {
	case g.closed:
		return ErrClosed
	case g.busy:
		return ErrBusy
	}
	return nil
}

// Begin marks a call in flight and returns the generation it belongs to.
// Callers check Ready first.
func (g *Gate) Begin() uint64 {
	g.busy = true
	return g.gen
}

// End reports whether a call started at gen may apply its response. When it
// may, the view stops being busy.
func (g *Gate) End(gen uint64) bool {
	if g.closed || gen != g.gen {
		return false
	}
	g.busy = false
	return true
}

// Generation returns the current generation.
func (g *Gate) Generation() uint64 { return g.gen }

// Current reports whether work scheduled at gen is still wanted.
func (g *Gate) Current(gen uint64) bool { return !g.closed && gen == g.gen }

// Bump invalidates any call in flight.
func (g *Gate) Bump() {
	g.gen++
	g.busy = false
}

// Close bumps the generation and refuses every later call.
func (g *Gate) Close() {
	g.Bump()
	g.closed = true
}

// Busy reports whether a call is in flight.
func (g *Gate) Busy() bool { return g.busy }

// Closed reports whether Close was called.
func (g *Gate) Closed() bool { return g.closed }
