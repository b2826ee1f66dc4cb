package executor

import "context"

// Resolver produces the value of one graph field, possibly issuing backend
// calls. source is the parent entity (nil for root fields) and args are the
// field arguments, coerced to Go values per the schema.
//
// Returning an error records a located error and nulls the field; sibling
// fields are unaffected. Returning (nil, nil) yields GraphQL null.
type Resolver func(ctx context.Context, source any, args map[string]any) (any, error)

// Resolvers is the field-name-to-resolver registry, keyed by object type
// name and then field name. Fields without an entry resolve from the
// parent value (struct tag or map key) without any I/O.
type Resolvers map[string]map[string]Resolver

// Register binds fn as the resolver for objectType.field.
func (r Resolvers) Register(objectType, field string, fn Resolver) {
	m := r[objectType]
	if m == nil {
		m = make(map[string]Resolver)
		r[objectType] = m
	}
	m[field] = fn
}

func (r Resolvers) lookup(objectType, field string) Resolver {
	return r[objectType][field]
}
