package executor

// GraphQLError represents an error that occurred during execution.
type GraphQLError struct {
	Message string `json:"message"`
	Path    Path   `json:"path,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// ExecutionResult represents the result of executing a GraphQL request.
// Data may be partially populated when Errors is non-empty.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
