package events

import (
	"net/http"
	"time"
)

// HTTPStart is emitted when a request reaches the gateway's GraphQL
// endpoint, before the body is parsed. The publishing context carries the
// request id subscribers correlate on.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is emitted once the response has been written. Status is the
// final HTTP status even when the payload carried GraphQL errors: resolver
// failures ride inside a 200.
type HTTPFinish struct {
	Request  *http.Request
	Status   int
	Duration time.Duration
}
