package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Pattern: Result comparison
func TestErrors_ResolverError_NullsFieldOnly(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query {
			bad: String
			good: String
		}
	`)
	rec := &callRecorder{}
	rs := Resolvers{}
	rs.Register("Query", "bad", errorResolver(rec, "bad", errors.New("boom")))
	rs.Register("Query", "good", valueResolver(rec, "good", "ok"))

	exec := NewExecutor(sch, rs)
	doc := mustParseQuery(t, "{ bad good }")

	got := exec.ExecuteRequest(context.Background(), doc, "", nil)

	want := &ExecutionResult{
		Data:   map[string]any{"bad": nil, "good": "ok"},
		Errors: []GraphQLError{{Message: "boom", Path: Path{"bad"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestErrors_NestedErrorPath(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { order: Order }
		type Order { items: [Item] }
		type Item { product: Product }
		type Product { name: String }
	`)
	rs := Resolvers{}
	rs.Register("Query", "order", func(ctx context.Context, source any, args map[string]any) (any, error) {
		return map[string]any{}, nil
	})
	rs.Register("Order", "items", func(ctx context.Context, source any, args map[string]any) (any, error) {
		return []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}, nil
	})
	rs.Register("Item", "product", func(ctx context.Context, source any, args map[string]any) (any, error) {
		if source.(map[string]any)["id"] == "b" {
			return nil, errors.New("not found")
		}
		return map[string]any{"name": "widget"}, nil
	})

	exec := NewExecutor(sch, rs)
	doc := mustParseQuery(t, "{ order { items { product { name } } } }")

	got := exec.ExecuteRequest(context.Background(), doc, "", nil)

	want := &ExecutionResult{
		Data: map[string]any{"order": map[string]any{"items": []any{
			map[string]any{"product": map[string]any{"name": "widget"}},
			map[string]any{"product": nil},
		}}},
		Errors: []GraphQLError{{Message: "not found", Path: Path{"order", "items", 1, "product"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestErrors_NonNullField_PropagatesToNullableAncestor(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { obj: Obj }
		type Obj { inner: String! }
	`)
	rs := Resolvers{}
	rs.Register("Query", "obj", func(ctx context.Context, source any, args map[string]any) (any, error) {
		return map[string]any{}, nil
	})
	rs.Register("Obj", "inner", func(ctx context.Context, source any, args map[string]any) (any, error) {
		return nil, nil
	})

	exec := NewExecutor(sch, rs)
	doc := mustParseQuery(t, "{ obj { inner } }")

	got := exec.ExecuteRequest(context.Background(), doc, "", nil)

	want := &ExecutionResult{
		Data: map[string]any{"obj": nil},
		Errors: []GraphQLError{{
			Message: "Cannot return null for non-nullable field obj.inner",
			Path:    Path{"obj", "inner"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestErrors_NonNullListElement_NullsWholeList(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { items: [Item!] }
		type Item { name: String! }
	`)
	rs := Resolvers{}
	rs.Register("Query", "items", func(ctx context.Context, source any, args map[string]any) (any, error) {
		return []any{map[string]any{"name": "one"}, map[string]any{}}, nil
	})

	exec := NewExecutor(sch, rs)
	doc := mustParseQuery(t, "{ items { name } }")

	got := exec.ExecuteRequest(context.Background(), doc, "", nil)

	want := &ExecutionResult{
		Data: map[string]any{"items": nil},
		Errors: []GraphQLError{{
			Message: "Cannot return null for non-nullable field items[1].name",
			Path:    Path{"items", 1, "name"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestErrors_ValidationFailure_NoExecution(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { known: String }
	`)
	rec := &callRecorder{}
	rs := Resolvers{}
	rs.Register("Query", "known", valueResolver(rec, "known", "v"))

	exec := NewExecutor(sch, rs)
	doc := mustParseQuery(t, "{ known unknown }")

	got := exec.ExecuteRequest(context.Background(), doc, "", nil)

	want := &ExecutionResult{
		Errors: []GraphQLError{{Message: `Cannot query field "unknown" on type "Query"`}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
	if rec.count("known") != 0 {
		t.Fatalf("no resolver may run after a validation failure, got %v", rec.get())
	}
}

// Pattern: Result comparison
func TestErrors_MissingRequiredVariable_Fatal(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { echo(msg: String!): String }
	`)
	rec := &callRecorder{}
	rs := Resolvers{}
	rs.Register("Query", "echo", valueResolver(rec, "echo", "v"))

	exec := NewExecutor(sch, rs)
	doc := mustParseQuery(t, "query($msg: String!) { echo(msg: $msg) }")

	got := exec.ExecuteRequest(context.Background(), doc, "", nil)

	if got.Data != nil {
		t.Fatalf("expected no data, got %v", got.Data)
	}
	if len(got.Errors) != 1 {
		t.Fatalf("expected one error, got %v", got.Errors)
	}
	if rec.count("echo") != 0 {
		t.Fatalf("no resolver may run on bad variables, got %v", rec.get())
	}
}

// Pattern: Behavior check
func TestErrors_ContextCancellation_ReachesResolver(t *testing.T) {
	sch := mustBuildSchema(t, `
		type Query { slow: String }
	`)
	rs := Resolvers{}
	rs.Register("Query", "slow", func(ctx context.Context, source any, args map[string]any) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := NewExecutor(sch, rs)
	doc := mustParseQuery(t, "{ slow }")

	got := exec.ExecuteRequest(ctx, doc, "", nil)

	want := &ExecutionResult{
		Data:   map[string]any{"slow": nil},
		Errors: []GraphQLError{{Message: "context canceled", Path: Path{"slow"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}
