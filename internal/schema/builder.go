package schema

import (
	"fmt"
	"strconv"

	language "github.com/shopmesh/gateway/internal/language"
)

// BuildFromSDL parses SDL text and builds the executable schema registry.
// Scalar builtins are always present; the SDL contributes the named types
// and the root operation bindings.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	s := &Schema{Types: map[string]*Type{}}
	addBuiltins(s)

	for _, def := range doc.Definitions {
		t, err := buildDefinition(def)
		if err != nil {
			return nil, err
		}
		if _, dup := s.Types[t.Name]; dup && t.Kind != TypeKindScalar {
			return nil, fmt.Errorf("duplicate type %q", t.Name)
		}
		s.Types[t.Name] = t
	}

	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case language.Query:
				s.QueryType = op.Type
			case language.Mutation:
				s.MutationType = op.Type
			}
		}
	}
	// Default root bindings by convention when no schema block is present.
	if s.QueryType == "" {
		if _, ok := s.Types["Query"]; ok {
			s.QueryType = "Query"
		}
	}
	if s.MutationType == "" {
		if _, ok := s.Types["Mutation"]; ok {
			s.MutationType = "Mutation"
		}
	}
	if s.QueryType == "" {
		return nil, fmt.Errorf("schema defines no query root type")
	}

	if err := checkTypeRefs(s); err != nil {
		return nil, err
	}
	return s, nil
}

func buildDefinition(def *language.Definition) (*Type, error) {
	switch def.Kind {
	case language.Object:
		t := &Type{Name: def.Name, Kind: TypeKindObject, Description: def.Description}
		for _, fd := range def.Fields {
			f := &Field{
				Name:        fd.Name,
				Description: fd.Description,
				Type:        typeRefFromAST(fd.Type),
			}
			for _, ad := range fd.Arguments {
				f.Arguments = append(f.Arguments, &InputValue{
					Name:         ad.Name,
					Description:  ad.Description,
					Type:         typeRefFromAST(ad.Type),
					DefaultValue: literalToGo(ad.DefaultValue),
				})
			}
			t.Fields = append(t.Fields, f)
		}
		return t, nil
	case language.InputObject:
		t := &Type{Name: def.Name, Kind: TypeKindInputObject, Description: def.Description}
		for _, fd := range def.Fields {
			t.InputFields = append(t.InputFields, &InputValue{
				Name:         fd.Name,
				Description:  fd.Description,
				Type:         typeRefFromAST(fd.Type),
				DefaultValue: literalToGo(fd.DefaultValue),
			})
		}
		return t, nil
	case language.Enum:
		t := &Type{Name: def.Name, Kind: TypeKindEnum, Description: def.Description}
		for _, ev := range def.EnumValues {
			t.EnumValues = append(t.EnumValues, ev.Name)
		}
		return t, nil
	case language.Scalar:
		return &Type{Name: def.Name, Kind: TypeKindScalar, Description: def.Description}, nil
	default:
		return nil, fmt.Errorf("unsupported definition kind %s for type %q", def.Kind, def.Name)
	}
}

func typeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	return ListType(typeRefFromAST(t.Elem))
}

// literalToGo converts an SDL literal (argument/input defaults) to a Go value.
func literalToGo(v *language.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(v.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(v.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return v.Raw
	case language.BooleanValue:
		return v.Raw == "true"
	case language.ListValue:
		out := make([]any, len(v.Children))
		for i, c := range v.Children {
			out[i] = literalToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(v.Children))
		for _, c := range v.Children {
			m[c.Name] = literalToGo(c.Value)
		}
		return m
	default:
		return nil
	}
}

// checkTypeRefs verifies every referenced type name is defined.
func checkTypeRefs(s *Schema) error {
	check := func(owner string, ref *TypeRef) error {
		name := GetNamedType(ref)
		if name == "" {
			return fmt.Errorf("%s references an unnamed type", owner)
		}
		if _, ok := s.Types[name]; !ok {
			return fmt.Errorf("%s references undefined type %q", owner, name)
		}
		return nil
	}
	for _, t := range s.Types {
		for _, f := range t.Fields {
			if err := check(t.Name+"."+f.Name, f.Type); err != nil {
				return err
			}
			for _, a := range f.Arguments {
				if err := check(t.Name+"."+f.Name+"("+a.Name+")", a.Type); err != nil {
					return err
				}
			}
		}
		for _, in := range t.InputFields {
			if err := check(t.Name+"."+in.Name, in.Type); err != nil {
				return err
			}
		}
	}
	return nil
}
