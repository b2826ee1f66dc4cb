package events

import "time"

// GraphQLStart is emitted per operation, after parsing and before any
// resolver runs. A batched HTTP request publishes one pair per operation
// in the batch.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
}

// GraphQLFinish is emitted when execution completes. Errors holds the
// located errors the response will carry; field-level backend failures
// land here rather than failing the operation.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}
