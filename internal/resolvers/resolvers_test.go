package resolvers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	backend "github.com/shopmesh/gateway/internal/backend"
	executor "github.com/shopmesh/gateway/internal/executor"
	language "github.com/shopmesh/gateway/internal/language"
)

func execQuery(t *testing.T, client *backend.Client, query string, vars map[string]any) *executor.ExecutionResult {
	t.Helper()
	sch, err := NewSchema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	doc, err := language.ParseQuery(query)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return executor.NewExecutor(sch, New(client)).ExecuteRequest(context.Background(), doc, "", vars)
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

const productJSON = `{
	"id": "p1", "name": "Widget", "description": "A widget",
	"price": 9.99, "category": "tools", "stock": 3,
	"created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-02T00:00:00Z"
}`

const orderJSON = `{
	"id": "o1", "user_id": "u1",
	"items": [{"product_id": "p1", "quantity": 2, "price": 9.99, "name": "Widget"}],
	"total_amount": 19.98, "status": "pending", "payment_status": "paid",
	"shipping_address": {"street": "1 Main St", "city": "Springfield", "country": "US"},
	"payment_method": "card",
	"created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"
}`

// Pattern: Result comparison
func TestQueryProduct_NotFound(t *testing.T) {
	catalog := httptest.NewServer(jsonHandler(http.StatusNotFound, `{"detail": "Item not found"}`))
	defer catalog.Close()
	client := backend.NewClient(map[string]string{ServiceCatalog: catalog.URL})

	got := execQuery(t, client, `{ product(id: "nope") { id name } }`, nil)

	want := &executor.ExecutionResult{
		Data:   map[string]any{"product": nil},
		Errors: []executor.GraphQLError{{Message: "not found", Path: executor.Path{"product"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestQueryProduct_Found(t *testing.T) {
	catalog := httptest.NewServer(jsonHandler(http.StatusOK, productJSON))
	defer catalog.Close()
	client := backend.NewClient(map[string]string{ServiceCatalog: catalog.URL})

	got := execQuery(t, client, `{ product(id: "p1") { id name price stock imageUrl } }`, nil)

	want := &executor.ExecutionResult{
		Data: map[string]any{"product": map[string]any{
			"id": "p1", "name": "Widget", "price": 9.99, "stock": int64(3), "imageUrl": nil,
		}},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Request capture
func TestQueryProducts_FilterMapping(t *testing.T) {
	var gotQuery string
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [], "total": 0, "page": 1, "page_size": 5, "total_pages": 0}`))
	}))
	defer catalog.Close()
	client := backend.NewClient(map[string]string{ServiceCatalog: catalog.URL})

	got := execQuery(t, client, `{ products(category: "tools", minPrice: 1.5, limit: 5) { id } }`, nil)
	if len(got.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}

	want := "category=tools&min_price=1.5&page=1&page_size=5"
	if gotQuery != want {
		t.Fatalf("catalog query = %q, want %q", gotQuery, want)
	}
}

// Pattern: Result comparison
func TestUserOrders_WithNestedProducts(t *testing.T) {
	var catalogCalls atomic.Int64
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		catalogCalls.Add(1)
		jsonHandler(http.StatusOK, productJSON)(w, r)
	}))
	defer catalog.Close()

	orders := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/orders/user/u1" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		var o1, o2 map[string]any
		json.Unmarshal([]byte(orderJSON), &o1)
		json.Unmarshal([]byte(orderJSON), &o2)
		o2["id"] = "o2"
		json.NewEncoder(w).Encode(map[string]any{"orders": []any{o1, o2}, "total": 2, "user_id": "u1"})
	}))
	defer orders.Close()

	client := backend.NewClient(map[string]string{
		ServiceCatalog: catalog.URL,
		ServiceOrder:   orders.URL,
	})

	got := execQuery(t, client, `{
		userOrders(userId: "u1") {
			id
			items { name product { name } }
		}
	}`, nil)

	wantOrder := func(id string) map[string]any {
		return map[string]any{
			"id": id,
			"items": []any{map[string]any{
				"name":    "Widget",
				"product": map[string]any{"name": "Widget"},
			}},
		}
	}
	want := &executor.ExecutionResult{
		Data:   map[string]any{"userOrders": []any{wantOrder("o1"), wantOrder("o2")}},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if catalogCalls.Load() != 2 {
		t.Fatalf("catalog calls = %d, want one per order line", catalogCalls.Load())
	}
}

// Pattern: Result comparison
func TestOrderItemProduct_VanishedProductRecordsError(t *testing.T) {
	catalog := httptest.NewServer(jsonHandler(http.StatusNotFound, `{"detail": "Item not found"}`))
	defer catalog.Close()
	orders := httptest.NewServer(jsonHandler(http.StatusOK, orderJSON))
	defer orders.Close()

	client := backend.NewClient(map[string]string{
		ServiceCatalog: catalog.URL,
		ServiceOrder:   orders.URL,
	})

	got := execQuery(t, client, `{ order(id: "o1") { id items { name product { name } } } }`, nil)

	want := &executor.ExecutionResult{
		Data: map[string]any{"order": map[string]any{
			"id": "o1",
			"items": []any{map[string]any{
				"name":    "Widget",
				"product": nil,
			}},
		}},
		Errors: []executor.GraphQLError{{
			Message: "not found",
			Path:    executor.Path{"order", "items", 0, "product"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestOrder_StatusAndTotalPassThrough(t *testing.T) {
	// An order status the gateway has never heard of must round-trip intact.
	body := `{
		"id": "o9", "user_id": "u1",
		"items": [{"product_id": "p1", "quantity": 1, "price": 10.10, "name": "W"}],
		"total_amount": 10.10, "status": "half-shipped", "payment_status": "paid",
		"shipping_address": {"street": "5 Elm St", "city": "Lund", "country": "SE"},
		"payment_method": "card",
		"created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"
	}`
	orders := httptest.NewServer(jsonHandler(http.StatusOK, body))
	defer orders.Close()
	client := backend.NewClient(map[string]string{ServiceOrder: orders.URL})

	got := execQuery(t, client, `{ order(id: "o9") { totalAmount status paymentStatus address } }`, nil)

	want := &executor.ExecutionResult{
		Data: map[string]any{"order": map[string]any{
			"totalAmount":   10.10,
			"status":        "half-shipped",
			"paymentStatus": "paid",
			"address":       "5 Elm St, Lund, SE",
		}},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Error message comparison
func TestOrder_ShippingAddressNotQueryable(t *testing.T) {
	client := backend.NewClient(map[string]string{})

	got := execQuery(t, client, `{ order(id: "o1") { shippingAddress } }`, nil)

	want := &executor.ExecutionResult{
		Errors: []executor.GraphQLError{{Message: `Cannot query field "shippingAddress" on type "Order"`}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Behavior check
func TestLaziness_UnrequestedFieldsCostNoCalls(t *testing.T) {
	var orderCalls atomic.Int64
	orders := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orderCalls.Add(1)
		jsonHandler(http.StatusOK, orderJSON)(w, r)
	}))
	defer orders.Close()
	catalog := httptest.NewServer(jsonHandler(http.StatusOK, productJSON))
	defer catalog.Close()

	client := backend.NewClient(map[string]string{
		ServiceCatalog: catalog.URL,
		ServiceOrder:   orders.URL,
	})

	got := execQuery(t, client, `{ product(id: "p1") { name } }`, nil)
	if len(got.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}
	if orderCalls.Load() != 0 {
		t.Fatalf("order service called %d times for a catalog-only query", orderCalls.Load())
	}
}

// Pattern: Result comparison
func TestCreateOrder_Success(t *testing.T) {
	var gotPayload map[string]any
	orders := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/orders" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(orderJSON))
	}))
	defer orders.Close()
	client := backend.NewClient(map[string]string{ServiceOrder: orders.URL})

	got := execQuery(t, client, `mutation {
		createOrder(
			userId: "u1",
			items: [{productId: "p1", quantity: 2, price: 9.99, name: "Widget"}],
			shippingAddress: {street: "1 Main St", city: "Springfield", country: "US", zipCode: "12345"}
		) { id status totalAmount }
	}`, nil)

	want := &executor.ExecutionResult{
		Data: map[string]any{"createOrder": map[string]any{
			"id": "o1", "status": "pending", "totalAmount": 19.98,
		}},
		Errors: []executor.GraphQLError{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	wantPayload := map[string]any{
		"user_id": "u1",
		"items": []any{map[string]any{
			"product_id": "p1", "quantity": float64(2), "price": 9.99, "name": "Widget",
		}},
		"shipping_address": map[string]any{
			"street": "1 Main St", "city": "Springfield", "country": "US", "zip_code": "12345",
		},
		"payment_method": "card",
	}
	if diff := cmp.Diff(wantPayload, gotPayload); diff != "" {
		t.Fatalf("order payload mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Behavior check
func TestCreateOrder_EmptyItemsRejectedBeforeIO(t *testing.T) {
	var orderCalls atomic.Int64
	orders := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orderCalls.Add(1)
		jsonHandler(http.StatusCreated, orderJSON)(w, r)
	}))
	defer orders.Close()
	client := backend.NewClient(map[string]string{ServiceOrder: orders.URL})

	got := execQuery(t, client, `mutation {
		createOrder(userId: "u1", items: [], shippingAddress: {street: "x"}) { id }
	}`, nil)

	want := &executor.ExecutionResult{
		Data: map[string]any{"createOrder": nil},
		Errors: []executor.GraphQLError{{
			Message: "order must contain at least one item",
			Path:    executor.Path{"createOrder"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if orderCalls.Load() != 0 {
		t.Fatalf("order service called %d times for a rejected mutation", orderCalls.Load())
	}
}

// Pattern: Result comparison
func TestCreateOrder_OrderServiceDown(t *testing.T) {
	orders := httptest.NewServer(jsonHandler(http.StatusCreated, orderJSON))
	orders.Close() // connection refused from here on
	client := backend.NewClient(map[string]string{ServiceOrder: orders.URL})

	got := execQuery(t, client, `mutation {
		createOrder(userId: "u1", items: [{productId: "p1", quantity: 1, price: 1.0, name: "W"}],
			shippingAddress: {street: "x"}) { id }
	}`, nil)

	want := &executor.ExecutionResult{
		Data: map[string]any{"createOrder": nil},
		Errors: []executor.GraphQLError{{
			Message: "order service unavailable",
			Path:    executor.Path{"createOrder"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestQueryUser_SynthesizedProfile(t *testing.T) {
	client := backend.NewClient(map[string]string{})

	got := execQuery(t, client, `{ user(id: "42") { id username email fullName } }`, nil)
	if len(got.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}

	want := map[string]any{"user": map[string]any{
		"id": "42", "username": "user_42", "email": "user42@example.com", "fullName": "Test User",
	}}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Request capture
func TestUserOrders_NestedLimit(t *testing.T) {
	orders := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want 100", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"orders": []any{}, "total": 0, "user_id": "42"})
	}))
	defer orders.Close()
	client := backend.NewClient(map[string]string{ServiceOrder: orders.URL})

	got := execQuery(t, client, `{ user(id: "42") { orders { id } } }`, nil)
	if len(got.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}

	want := map[string]any{"user": map[string]any{"orders": []any{}}}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
