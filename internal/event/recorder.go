package event

// Recorder keeps every published event in order. Used by tests and replays.
type Recorder struct {
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish appends e. A nil recorder drops it.
func (r *Recorder) Publish(e Event) {
	if r == nil {
		return
	}
	r.events = append(r.events, e)
}

// All returns a copy of the recorded events.
func (r *Recorder) All() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []Type {
	out := make([]Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

// OfType returns recorded events with type t.
func (r *Recorder) OfType(t Type) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t Type) int {
	return len(r.OfType(t))
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
