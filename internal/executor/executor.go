package executor

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	language "github.com/shopmesh/gateway/internal/language"
	schema "github.com/shopmesh/gateway/internal/schema"
)

type Path []PathElement

type PathElement any

// Executor executes GraphQL requests against a schema with a fixed
// resolver registry. It is stateless across requests and safe for
// concurrent use.
type Executor struct {
	schema    *schema.Schema
	resolvers Resolvers
}

func NewExecutor(sch *schema.Schema, resolvers Resolvers) *Executor {
	return &Executor{schema: sch, resolvers: resolvers}
}

// executionState holds per-request state. The error list is shared across
// the fan-out goroutines and guarded by mu; everything else is read-only
// during execution.
type executionState struct {
	schema         *schema.Schema
	resolvers      Resolvers
	document       *language.QueryDocument
	variableValues map[string]any
	ctx            context.Context

	mu     sync.Mutex
	errors []GraphQLError
}

func (s *executionState) addError(message string, path Path) {
	s.mu.Lock()
	s.errors = append(s.errors, GraphQLError{Message: message, Path: path})
	s.mu.Unlock()
}

func (s *executionState) hasErrorAtPath(path Path) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, err := range s.errors {
		if reflect.DeepEqual(err.Path, path) {
			return true
		}
	}
	return false
}

// ExecuteRequest runs one operation of the document. A parse-level problem
// (unknown operation, bad variables, validation failure) short-circuits
// with no data; resolver failures surface as located errors next to
// whatever data did resolve.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
) *ExecutionResult {
	operation := getOperation(document, operationName)
	if operation == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: "operation not found"}}}
	}

	var rootType *schema.Type
	switch operation.Operation {
	case language.Query:
		rootType = e.schema.GetQueryType()
	case language.Mutation:
		rootType = e.schema.GetMutationType()
	default:
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("unsupported operation type: %s", operation.Operation)}}}
	}
	if rootType == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("schema does not support %s operations", operation.Operation)}}}
	}

	coercedVariableValues, err := coerceVariableValues(e.schema, operation, variableValues)
	if err != nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	if errs := validateOperation(e.schema, document, operation); len(errs) > 0 {
		return &ExecutionResult{Errors: errs}
	}

	state := &executionState{
		schema:         e.schema,
		resolvers:      e.resolvers,
		document:       document,
		variableValues: coercedVariableValues,
		ctx:            ctx,
		errors:         []GraphQLError{},
	}

	// Mutation root fields run serially in document order; everything else
	// fans out.
	serial := operation.Operation == language.Mutation
	data := executeSelectionSet(state, rootType, operation.SelectionSet, nil, Path{}, serial)

	return &ExecutionResult{Data: data, Errors: state.errors}
}

// executeSelectionSet resolves one object level. Sibling field groups run
// concurrently (unless serial) and join before assembly; the result map is
// built in document order. A nil return signals a Non-Null violation to
// the parent.
func executeSelectionSet(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, objectValue any, path Path, serial bool) map[string]any {
	grouped := collectFields(state, objectType, selectionSet)
	ordered := grouped.orderedFields()

	results := make([]any, len(ordered))
	if serial || len(ordered) == 1 {
		for i, cf := range ordered {
			results[i] = executeFieldGroup(state, objectType, objectValue, cf.Fields, appendPath(path, cf.ResponseName))
		}
	} else {
		var wg sync.WaitGroup
		for i, cf := range ordered {
			wg.Add(1)
			go func(i int, cf collectedField) {
				defer wg.Done()
				results[i] = executeFieldGroup(state, objectType, objectValue, cf.Fields, appendPath(path, cf.ResponseName))
			}(i, cf)
		}
		wg.Wait()
	}

	resultMap := make(map[string]any, len(ordered))
	for i, cf := range ordered {
		if cf.Fields[0].Name == "__typename" {
			resultMap[cf.ResponseName] = results[i]
			continue
		}
		fieldDef := objectType.Field(cf.Fields[0].Name)
		if fieldDef == nil {
			// Error was recorded during field execution; omit the entry.
			continue
		}
		if schema.IsNonNull(fieldDef.Type) && isNullish(results[i]) {
			if len(path) > 0 {
				return nil
			}
			// Root level: keep going but write null.
			resultMap[cf.ResponseName] = nil
			continue
		}
		if isNullish(results[i]) {
			resultMap[cf.ResponseName] = nil
		} else {
			resultMap[cf.ResponseName] = results[i]
		}
	}
	return resultMap
}

// executeFieldGroup resolves and completes one field group. Resolver-backed
// fields call out through the registry; all others read from the parent
// value.
func executeFieldGroup(state *executionState, objectType *schema.Type, objectValue any, fields []*language.Field, path Path) any {
	field := fields[0]
	if field.Name == "__typename" {
		return objectType.Name
	}

	fieldDef := objectType.Field(field.Name)
	if fieldDef == nil {
		state.addError(fmt.Sprintf("Cannot query field %q on type %q", field.Name, objectType.Name), path)
		return nil
	}

	argumentValues := coerceArgumentValues(fieldDef, field.Arguments, state, path)

	var resolved any
	if resolve := state.resolvers.lookup(objectType.Name, field.Name); resolve != nil {
		value, err := resolve(state.ctx, objectValue, argumentValues)
		if err != nil {
			state.addError(err.Error(), path)
			return nil
		}
		resolved = value
	} else {
		resolved = sourceFieldValue(objectValue, field.Name)
	}

	return completeValue(state, fieldDef.Type, fields, resolved, path)
}

// completeValue completes a resolved value against its declared type.
func completeValue(state *executionState, fieldType *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	if schema.IsNonNull(fieldType) {
		if isNullish(result) {
			if !state.hasErrorAtPath(path) {
				state.addError(fmt.Sprintf("Cannot return null for non-nullable field %s", path), path)
			}
			return nil
		}
		completed := completeValue(state, schema.Unwrap(fieldType), fields, result, path)
		if isNullish(completed) {
			// Error already recorded at the original path; propagate only.
			return nil
		}
		return completed
	}

	if isNullish(result) {
		return nil
	}

	if schema.IsList(fieldType) {
		return completeListValue(state, fieldType, fields, result, path)
	}

	namedType := schema.GetNamedType(fieldType)
	typeObj := state.schema.Types[namedType]
	if typeObj == nil {
		state.addError(fmt.Sprintf("Unknown type: %s", namedType), path)
		return nil
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		serialized, err := serializeLeafValue(namedType, result)
		if err != nil {
			state.addError(err.Error(), path)
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		sub := mergeSelectionSets(fields)
		return executeSelectionSet(state, typeObj, sub, result, path, false)
	default:
		state.addError(fmt.Sprintf("Cannot complete value of unexpected type kind: %s", typeObj.Kind), path)
		return nil
	}
}

// completeListValue completes list elements concurrently and assembles them
// in index order.
func completeListValue(state *executionState, listType *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	items, ok := asSlice(result)
	if !ok {
		state.addError(fmt.Sprintf("Expected list value, got %T", result), path)
		return nil
	}

	inner := schema.Unwrap(listType)
	completed := make([]any, len(items))
	if len(items) > 1 {
		var wg sync.WaitGroup
		for i, item := range items {
			wg.Add(1)
			go func(i int, item any) {
				defer wg.Done()
				completed[i] = completeValue(state, inner, fields, item, appendPath(path, i))
			}(i, item)
		}
		wg.Wait()
	} else {
		for i, item := range items {
			completed[i] = completeValue(state, inner, fields, item, appendPath(path, i))
		}
	}

	for i := range completed {
		if schema.IsNonNull(inner) && isNullish(completed[i]) {
			// Null element in a [T!] list nullifies the whole list; the
			// element error is already recorded.
			return nil
		}
		if isNullish(completed[i]) {
			completed[i] = nil
		}
	}
	return completed
}

func asSlice(result any) ([]any, bool) {
	if direct, ok := result.([]any); ok {
		return direct, true
	}
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// getOperation retrieves the operation from the document.
func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		return document.Operations[0]
	}
	for _, op := range document.Operations {
		if op.Name == operationName {
			return op
		}
	}
	return nil
}

// mergeSelectionSets merges selection sets from multiple field nodes that
// share one response name.
func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

func appendPath(path Path, elem PathElement) Path {
	newPath := make(Path, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = elem
	return newPath
}

// String renders the path in the response's dotted form, e.g. "order.items[1].product".
func (p Path) String() string {
	result := ""
	for i, elem := range p {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				result += "."
			}
			result += v
		case int:
			result += fmt.Sprintf("[%d]", v)
		}
	}
	return result
}

// isNullish returns true for nil interfaces and typed nils.
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
