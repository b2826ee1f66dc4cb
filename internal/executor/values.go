package executor

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	language "github.com/shopmesh/gateway/internal/language"
	schema "github.com/shopmesh/gateway/internal/schema"
)

// coerceVariableValues coerces the request's variables against the
// operation's variable definitions. Any failure is fatal for the request.
func coerceVariableValues(
	sch *schema.Schema,
	operation *language.OperationDefinition,
	variableValues map[string]any,
) (map[string]any, error) {
	if variableValues == nil {
		variableValues = make(map[string]any)
	}
	coerced := make(map[string]any)
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		t := varDef.Type
		val, ok := variableValues[name]
		if !ok {
			if v2, ok2 := variableValues[strings.TrimPrefix(name, "$")]; ok2 {
				val = v2
				ok = true
			}
		}
		if !ok {
			if varDef.DefaultValue != nil {
				val = astValueToGo(varDef.DefaultValue)
			} else if t.NonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", name, t.String())
			} else {
				continue
			}
		}
		if val == nil && t.NonNull {
			return nil, fmt.Errorf("variable $%s of type %s cannot be null", name, t.String())
		}
		cv, err := coerceValue(val, typeRefFromASTType(t))
		if err != nil {
			return nil, fmt.Errorf("variable $%s of type %s cannot be coerced: %v", name, t.String(), err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// coerceArgumentValues coerces a field's argument values, applying schema
// defaults for omitted arguments.
func coerceArgumentValues(
	fieldDef *schema.Field,
	arguments language.ArgumentList,
	state *executionState,
	path Path,
) map[string]any {
	coerced := make(map[string]any)
	for _, arg := range arguments {
		argDef := fieldDef.Argument(arg.Name)
		if argDef == nil {
			continue
		}
		val := valueFromASTWithVars(arg.Value, state.variableValues)
		cv, err := coerceValue(val, argDef.Type)
		if err != nil {
			state.addError(fmt.Sprintf("argument %q cannot be coerced: %v", arg.Name, err), path)
			continue
		}
		coerced[arg.Name] = cv
	}
	for _, argDef := range fieldDef.Arguments {
		if _, ok := coerced[argDef.Name]; ok {
			continue
		}
		if argDef.DefaultValue != nil {
			coerced[argDef.Name] = argDef.DefaultValue
		} else if schema.IsNonNull(argDef.Type) {
			state.addError(fmt.Sprintf("argument %q of required type was not provided", argDef.Name), path)
		}
	}
	return coerced
}

func typeRefFromASTType(t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return schema.NonNullType(typeRefFromASTType(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return schema.NamedType(t.NamedType)
	}
	return schema.ListType(typeRefFromASTType(t.Elem))
}

// valueFromASTWithVars converts an AST value to a Go value, substituting
// variables.
func valueFromASTWithVars(value *language.Value, variableValues map[string]any) any {
	if value == nil {
		return nil
	}
	if value.Kind == language.Variable {
		if v, ok := variableValues[value.Raw]; ok {
			return v
		}
		if v, ok := variableValues[strings.TrimPrefix(value.Raw, "$")]; ok {
			return v
		}
		return nil
	}
	return astValueToGo(value)
}

// astValueToGo converts an AST literal to a Go value.
func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, c := range value.Children {
			m[c.Name] = astValueToGo(c.Value)
		}
		return m
	default:
		return nil
	}
}

// coerceValue coerces an input value (argument or variable) to the given
// GraphQL type.
func coerceValue(value any, targetType *schema.TypeRef) (any, error) {
	if schema.IsNonNull(targetType) {
		if value == nil {
			return nil, fmt.Errorf("cannot provide null for non-null type")
		}
		return coerceValue(value, schema.Unwrap(targetType))
	}
	if value == nil {
		return nil, nil
	}
	if schema.IsList(targetType) {
		return coerceListValue(value, targetType)
	}

	switch schema.GetNamedType(targetType) {
	case "Int":
		return coerceToInt(value)
	case "Float":
		return coerceToFloat(value)
	case "String":
		return coerceToString(value)
	case "Boolean":
		return coerceToBoolean(value)
	case "ID":
		return coerceToID(value)
	default:
		// Input objects, enums and custom scalars pass through as-is.
		return value, nil
	}
}

func coerceListValue(value any, listType *schema.TypeRef) (any, error) {
	innerType := schema.Unwrap(listType)
	if slice, ok := value.([]any); ok {
		coercedSlice := make([]any, len(slice))
		for i, item := range slice {
			coercedItem, err := coerceValue(item, innerType)
			if err != nil {
				return nil, err
			}
			coercedSlice[i] = coercedItem
		}
		return coercedSlice, nil
	}
	// A single value becomes a list of one, per input coercion rules.
	coercedItem, err := coerceValue(value, innerType)
	if err != nil {
		return nil, err
	}
	return []any{coercedItem}, nil
}

func coerceToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	case string:
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to int", value, value)
}

func coerceToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if floatVal, err := strconv.ParseFloat(v, 64); err == nil {
			return floatVal, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to float", value, value)
}

func coerceToString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return fmt.Sprintf("%v", value), nil
}

func coerceToBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to boolean", value, value)
}

func coerceToID(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	default:
		return fmt.Sprintf("%v", value), nil
	}
}

// serializeLeafValue serializes a scalar/enum result to a JSON-safe value.
// Unlike input coercion, serialization is strict: an adapter-level type
// mismatch must surface as a field error, never a silent conversion.
func serializeLeafValue(typeName string, value any) (any, error) {
	value = indirect(value)
	if value == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(value)
	switch typeName {
	case "String", "ID":
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
		if typeName == "ID" && isIntKind(rv.Kind()) {
			return strconv.FormatInt(rv.Int(), 10), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as %s", value, typeName)
	case "Int":
		if isIntKind(rv.Kind()) {
			return rv.Int(), nil
		}
		if rv.Kind() == reflect.Float64 || rv.Kind() == reflect.Float32 {
			f := rv.Float()
			if f == math.Trunc(f) {
				return int64(f), nil
			}
		}
		return nil, fmt.Errorf("cannot serialize %T as Int", value)
	case "Float":
		if rv.Kind() == reflect.Float64 || rv.Kind() == reflect.Float32 {
			return rv.Float(), nil
		}
		if isIntKind(rv.Kind()) {
			return float64(rv.Int()), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Float", value)
	case "Boolean":
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Boolean", value)
	default:
		// Custom scalars and enums: strings pass through, anything else
		// must already be JSON-safe.
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
		return value, nil
	}
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// indirect dereferences pointers, returning nil for nil pointers.
func indirect(value any) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}
