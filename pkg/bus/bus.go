// Package bus implements the flow state bus: a single, process-wide,
// replaceable callback slot carrying the externally observable flow outcomes.
//
// Only the most recently set listener receives outcomes. Publishing with no
// listener set drops the outcome; nothing is queued. The host owns the bus
// lifecycle: create it at app start, clear it at logout.
package bus

import (
	"sync"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// Listener receives published flow outcomes.
type Listener func(domain.FlowOutcome)

// Bus is the single-slot broadcast channel. The zero value is usable.
type Bus struct {
	mu       sync.Mutex
	listener Listener
}

// New creates a bus with no listener set.
func New() *Bus {
	return &Bus{}
}

// SetListener replaces the current listener. Passing nil detaches it.
func (b *Bus) SetListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = l
}

// Clear detaches the current listener. Subsequent outcomes are dropped.
func (b *Bus) Clear() {
	b.SetListener(nil)
}

// Publish delivers the outcome to the current listener, if any. The listener
// is invoked synchronously on the caller's goroutine, outside the bus lock,
// so it may call back into the bus.
func (b *Bus) Publish(outcome domain.FlowOutcome) {
	b.mu.Lock()
	l := b.listener
	b.mu.Unlock()

	if l == nil {
		return
	}
	l(outcome)
}

// EndSession publishes the session-teardown outcome. It is deliverable at any
// time, including while a flow is being presented; the host is expected to
// tear down any presented flow upon receiving it.
func (b *Bus) EndSession() {
	b.Publish(domain.SessionEnded())
}
