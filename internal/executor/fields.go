package executor

import (
	language "github.com/shopmesh/gateway/internal/language"
	schema "github.com/shopmesh/gateway/internal/schema"
)

// collectedFieldMap preserves field order from the original query.
type collectedFieldMap struct {
	fields []collectedField
	index  map[string]int
}

type collectedField struct {
	ResponseName string
	Fields       []*language.Field
}

func newCollectedFieldMap() *collectedFieldMap {
	return &collectedFieldMap{index: make(map[string]int)}
}

func (cfm *collectedFieldMap) add(responseName string, field *language.Field) {
	if idx, exists := cfm.index[responseName]; exists {
		cfm.fields[idx].Fields = append(cfm.fields[idx].Fields, field)
		return
	}
	cfm.index[responseName] = len(cfm.fields)
	cfm.fields = append(cfm.fields, collectedField{ResponseName: responseName, Fields: []*language.Field{field}})
}

func (cfm *collectedFieldMap) orderedFields() []collectedField {
	return cfm.fields
}

// collectFields groups the selections of one object level by response name,
// expanding fragments and honoring @skip/@include.
func collectFields(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet) *collectedFieldMap {
	grouped := newCollectedFieldMap()
	collectFieldsImpl(state, objectType, selectionSet, grouped, make(map[string]bool))
	return grouped
}

func collectFieldsImpl(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, grouped *collectedFieldMap, visitedFragments map[string]bool) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}
			responseName := sel.Alias
			if responseName == "" {
				responseName = sel.Name
			}
			grouped.add(responseName, sel)

		case *language.InlineFragment:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}
			if sel.TypeCondition != "" && sel.TypeCondition != objectType.Name {
				continue
			}
			collectFieldsImpl(state, objectType, sel.SelectionSet, grouped, visitedFragments)

		case *language.FragmentSpread:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}
			if visitedFragments[sel.Name] {
				continue
			}
			visitedFragments[sel.Name] = true

			fragment := state.document.Fragments.ForName(sel.Name)
			if fragment == nil {
				continue
			}
			if fragment.TypeCondition != "" && fragment.TypeCondition != objectType.Name {
				continue
			}
			if !shouldIncludeNode(state, fragment.Directives) {
				continue
			}
			collectFieldsImpl(state, objectType, fragment.SelectionSet, grouped, visitedFragments)
		}
	}
}

// shouldIncludeNode evaluates the @skip and @include directives.
func shouldIncludeNode(state *executionState, directives language.DirectiveList) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if cond, ok := directiveArgumentValue(state, skip, "if").(bool); ok && cond {
			return false
		}
	}
	if include := directives.ForName("include"); include != nil {
		if cond, ok := directiveArgumentValue(state, include, "if").(bool); ok && !cond {
			return false
		}
	}
	return true
}

func directiveArgumentValue(state *executionState, directive *language.Directive, argName string) any {
	for _, arg := range directive.Arguments {
		if arg.Name == argName {
			return valueFromASTWithVars(arg.Value, state.variableValues)
		}
	}
	return nil
}
