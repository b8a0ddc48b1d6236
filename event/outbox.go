package event

import "sync"

// Outbox buffers events and deferred functions raised during one engine step
// and releases them together once the step has finished mutating state.
type Outbox struct {
	events []Event
	defers []func()
}

// Emit queues an event.
func (o *Outbox) Emit(e Event) {
	o.events = append(o.events, e)
}

// Defer queues a function to run after the queued events are delivered.
func (o *Outbox) Defer(fn func()) {
	o.defers = append(o.defers, fn)
}

// Len returns the number of queued events.
func (o *Outbox) Len() int {
	return len(o.events)
}

// Flush delivers all queued events to sink, runs the deferred functions and
// resets the buffer.
func (o *Outbox) Flush(sink Sink) {
	events, defers := o.events, o.defers
	o.events, o.defers = nil, nil

	for _, e := range events {
		sink.Notify(e)
	}
	for _, fn := range defers {
		fn()
	}
}

// Recorder is a Sink that keeps everything it receives. It is safe for
// concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// Find returns the recorded events of the given kind.
func (r *Recorder) Find(k Kind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
