package events

import "time"

// BackendCallStart is emitted before a backend service HTTP call. CallID
// is unique per call: resolver fan-out keeps several identical calls in
// flight within one request, so subscribers pair Start with Finish by
// CallID rather than by call identity.
type BackendCallStart struct {
	CallID  string
	Service string
	Method  string
	Path    string
	Target  string
}

// BackendCallFinish is emitted after a backend service HTTP call completes.
// Status is zero when the call failed before a response arrived.
type BackendCallFinish struct {
	CallID   string
	Service  string
	Method   string
	Path     string
	Target   string
	Status   int
	Err      error
	Duration time.Duration
}
