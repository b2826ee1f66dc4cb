package schema

// Schema is the gateway's named-type registry. It is built once at startup
// from SDL and read concurrently by the executor; it is never mutated after
// construction.
type Schema struct {
	QueryType    string
	MutationType string
	Types        map[string]*Type // all named types keyed by name
}

// GetQueryType returns the root query type (may be nil if absent).
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent).
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// Type is a named GraphQL type.
type Type struct {
	Name        string
	Kind        TypeKind
	Description string
	Fields      []*Field      // for OBJECT
	EnumValues  []string      // for ENUM
	InputFields []*InputValue // for INPUT_OBJECT
}

// Field returns the field definition with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field represents a field on an object type.
type Field struct {
	Name        string
	Description string
	Type        *TypeRef
	Arguments   []*InputValue
}

// Argument returns the argument definition with the given name, or nil.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// InputValue is a field argument or an input-object field.
type InputValue struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue any
}

// TypeKind represents the kind of GraphQL type.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef references a type, possibly wrapped in List/Non-Null.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // for LIST and NON_NULL
	Named  string   // for NAMED
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.Kind == TypeRefKindNonNull }

// IsList reports whether the type is a list, looking through one Non-Null wrapper.
func IsList(t *TypeRef) bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Unwrap removes one layer of Non-Null or List wrapping.
func Unwrap(t *TypeRef) *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// GetNamedType returns the innermost named type.
func GetNamedType(t *TypeRef) string {
	for t != nil {
		if t.Named != "" {
			return t.Named
		}
		t = t.OfType
	}
	return ""
}
