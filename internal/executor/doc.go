// Package executor implements the gateway's GraphQL execution engine:
// Parse → Validate → Execute → Assemble.
//
// Field resolution is dispatched through an explicit registry (Resolvers)
// mapping object type and field name to a resolver function. The registry
// is assembled once at schema wire-up time; fields with no entry resolve
// from the parent value by struct tag or map key, costing no I/O. A
// resolver runs only when its field appears in the requested selection
// set, so unrequested sub-graphs incur zero backend calls.
//
// Execution walks the selection tree depth-first. Sibling fields of an
// object level and elements of a list fan out as goroutines and join
// before the level is assembled, except mutation root fields, which run
// serially in document order so one mutation's side effect is observable
// before the next starts. Results are always assembled in the order the
// query document requested them, regardless of completion order.
//
// Errors follow the GraphQL partial-success model: a parse or validation
// failure aborts the whole request with no data, while a resolver failure
// nulls only its own field and appends a located error (message + path).
// Non-Null violations propagate null to the nearest nullable ancestor.
// The request context flows into every resolver; cancelling it abandons
// all outstanding backend calls for the request.
package executor
