package executor

import (
	"fmt"

	language "github.com/shopmesh/gateway/internal/language"
	schema "github.com/shopmesh/gateway/internal/schema"
)

// validateOperation checks the operation's field tree against the type
// registry before any resolver runs. Any finding is fatal for the whole
// request: no partial execution follows a validation failure.
func validateOperation(sch *schema.Schema, document *language.QueryDocument, operation *language.OperationDefinition) []GraphQLError {
	rootName := sch.QueryType
	if operation.Operation == language.Mutation {
		rootName = sch.MutationType
	}
	v := &validator{schema: sch, document: document}
	v.selectionSet(rootName, operation.SelectionSet, make(map[string]bool))
	return v.errors
}

type validator struct {
	schema   *schema.Schema
	document *language.QueryDocument
	errors   []GraphQLError
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, GraphQLError{Message: fmt.Sprintf(format, args...)})
}

func (v *validator) selectionSet(typeName string, selectionSet language.SelectionSet, visitedFragments map[string]bool) {
	t := v.schema.Types[typeName]
	if t == nil {
		v.errorf("Unknown type %q", typeName)
		return
	}

	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if sel.Name == "__typename" {
				if len(sel.SelectionSet) > 0 {
					v.errorf("Field \"__typename\" must not have a selection")
				}
				continue
			}
			fieldDef := t.Field(sel.Name)
			if fieldDef == nil {
				v.errorf("Cannot query field %q on type %q", sel.Name, typeName)
				continue
			}
			for _, arg := range sel.Arguments {
				if fieldDef.Argument(arg.Name) == nil {
					v.errorf("Unknown argument %q on field %q of type %q", arg.Name, sel.Name, typeName)
				}
			}
			named := schema.GetNamedType(fieldDef.Type)
			fieldType := v.schema.Types[named]
			if fieldType == nil {
				v.errorf("Unknown type %q", named)
				continue
			}
			if fieldType.Kind == schema.TypeKindObject {
				if len(sel.SelectionSet) == 0 {
					v.errorf("Field %q of type %q must have a selection of subfields", sel.Name, named)
				} else {
					v.selectionSet(named, sel.SelectionSet, visitedFragments)
				}
			} else if len(sel.SelectionSet) > 0 {
				v.errorf("Field %q must not have a selection since type %q has no subfields", sel.Name, named)
			}

		case *language.InlineFragment:
			target := typeName
			if sel.TypeCondition != "" {
				if v.schema.Types[sel.TypeCondition] == nil {
					v.errorf("Unknown type %q in inline fragment", sel.TypeCondition)
					continue
				}
				target = sel.TypeCondition
			}
			v.selectionSet(target, sel.SelectionSet, visitedFragments)

		case *language.FragmentSpread:
			fragment := v.document.Fragments.ForName(sel.Name)
			if fragment == nil {
				v.errorf("Unknown fragment %q", sel.Name)
				continue
			}
			if visitedFragments[sel.Name] {
				continue
			}
			visitedFragments[sel.Name] = true
			target := fragment.TypeCondition
			if target == "" {
				target = typeName
			}
			v.selectionSet(target, fragment.SelectionSet, visitedFragments)
		}
	}
}
