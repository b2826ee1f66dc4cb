package entity

import (
	"fmt"
	"math"
)

// Decoding is total over the payload: every required key is checked, a
// missing optional key becomes a typed absent value, and a type mismatch is
// an error rather than a silent coercion.

func reqString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

func optString(m map[string]any, key string) (*string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return &s, nil
}

func reqFloat(m map[string]any, key string) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing field %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("field %q: expected number, got %T", key, v)
}

func reqInt(m map[string]any, key string) (int, error) {
	f, err := reqFloat(m, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("field %q: expected integer, got %v", key, f)
	}
	return int(f), nil
}

// intOr reads an integer with a default for a missing key.
func intOr(m map[string]any, key string, def int) (int, error) {
	if v, ok := m[key]; !ok || v == nil {
		return def, nil
	}
	return reqInt(m, key)
}

func reqMap(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing field %q", key)
	}
	mm, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q: expected object, got %T", key, v)
	}
	return mm, nil
}

func reqList(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing field %q", key)
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q: expected array, got %T", key, v)
	}
	return l, nil
}
