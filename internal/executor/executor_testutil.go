package executor

import (
	"context"
	"sync"
	"testing"

	language "github.com/shopmesh/gateway/internal/language"
	schema "github.com/shopmesh/gateway/internal/schema"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// mustBuildSchema builds a schema from SDL and fails the test on error.
func mustBuildSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL(sdl)
	if err != nil {
		t.Fatalf("schema error: %v", err)
	}
	return s
}

// callRecorder tracks resolver invocations in call order.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
}

func (r *callRecorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *callRecorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

// valueResolver returns a fixed value and records the call.
func valueResolver(rec *callRecorder, name string, value any) Resolver {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		if rec != nil {
			rec.record(name)
		}
		return value, nil
	}
}

// errorResolver returns a fixed error and records the call.
func errorResolver(rec *callRecorder, name string, err error) Resolver {
	return func(ctx context.Context, source any, args map[string]any) (any, error) {
		if rec != nil {
			rec.record(name)
		}
		return nil, err
	}
}
