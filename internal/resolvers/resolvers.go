// Package resolvers binds graph fields to backend calls. It is the only
// layer aware of which service owns which entity; everything below it is
// generic execution and everything above it is transport.
package resolvers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	backend "github.com/shopmesh/gateway/internal/backend"
	entity "github.com/shopmesh/gateway/internal/entity"
	executor "github.com/shopmesh/gateway/internal/executor"
)

// Backend service names. The payment service is configured and reported
// by the health endpoint but the graph never calls it directly: payment
// state arrives denormalized on the order.
const (
	ServiceIdentity = "identity"
	ServiceCatalog  = "catalog"
	ServiceOrder    = "order"
	ServicePayment  = "payment"
)

const (
	userOrdersLimit     = 100
	userOrdersRootLimit = 50
)

// New builds the resolver registry over the given backend client. Fields
// without an entry here resolve from the parent entity without I/O.
func New(client *backend.Client) executor.Resolvers {
	rs := &root{client: client}
	r := executor.Resolvers{}
	r.Register("Query", "user", rs.queryUser)
	r.Register("Query", "product", rs.queryProduct)
	r.Register("Query", "products", rs.queryProducts)
	r.Register("Query", "order", rs.queryOrder)
	r.Register("Query", "userOrders", rs.queryUserOrders)
	r.Register("Mutation", "createOrder", rs.createOrder)
	r.Register("OrderItem", "product", rs.orderItemProduct)
	r.Register("User", "orders", rs.userOrders)
	r.Register("Order", "address", rs.orderAddress)
	return r
}

type root struct {
	client *backend.Client
}

// queryUser synthesizes a user projection from the id. The identity
// service scopes /profile to a bearer token the gateway does not hold, so
// user lookup by id has no backing endpoint.
func (r *root) queryUser(ctx context.Context, source any, args map[string]any) (any, error) {
	id, err := argString(args, "id")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	fullName := "Test User"
	return &entity.User{
		ID:        id,
		Username:  "user_" + id,
		Email:     "user" + id + "@example.com",
		FullName:  &fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *root) queryProduct(ctx context.Context, source any, args map[string]any) (any, error) {
	id, err := argString(args, "id")
	if err != nil {
		return nil, err
	}
	return r.fetchProduct(ctx, id)
}

func (r *root) queryProducts(ctx context.Context, source any, args map[string]any) (any, error) {
	limit, err := argInt(args, "limit")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("page", "1")
	q.Set("page_size", strconv.Itoa(limit))
	if v, ok := args["category"].(string); ok {
		q.Set("category", v)
	}
	if v, ok := args["minPrice"].(float64); ok {
		q.Set("min_price", strconv.FormatFloat(v, 'f', -1, 64))
	}
	if v, ok := args["maxPrice"].(float64); ok {
		q.Set("max_price", strconv.FormatFloat(v, 'f', -1, 64))
	}
	if v, ok := args["search"].(string); ok {
		q.Set("search", v)
	}

	data, err := r.client.Get(ctx, ServiceCatalog, "/api/v1/catalog/items", q)
	if err != nil {
		return nil, fieldError(err)
	}
	products, err := entity.DecodeProductPage(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog search: %w", err)
	}
	return products, nil
}

func (r *root) queryOrder(ctx context.Context, source any, args map[string]any) (any, error) {
	id, err := argString(args, "id")
	if err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, ServiceOrder, "/api/v1/orders/"+id, nil)
	if err != nil {
		return nil, fieldError(err)
	}
	order, err := entity.DecodeOrder(data)
	if err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return order, nil
}

func (r *root) queryUserOrders(ctx context.Context, source any, args map[string]any) (any, error) {
	userID, err := argString(args, "userId")
	if err != nil {
		return nil, err
	}
	return r.fetchUserOrders(ctx, userID, userOrdersRootLimit)
}

// userOrders resolves User.orders from the order service.
func (r *root) userOrders(ctx context.Context, source any, args map[string]any) (any, error) {
	user, ok := source.(*entity.User)
	if !ok {
		return nil, fmt.Errorf("orders requires a user parent, got %T", source)
	}
	return r.fetchUserOrders(ctx, user.ID, userOrdersLimit)
}

// orderItemProduct resolves the live catalog record behind an order line.
// A vanished product nulls the field and records the error at its path;
// the line item still carries its price and name snapshots, and sibling
// items are unaffected.
func (r *root) orderItemProduct(ctx context.Context, source any, args map[string]any) (any, error) {
	item, ok := source.(*entity.OrderItem)
	if !ok {
		return nil, fmt.Errorf("product requires an order item parent, got %T", source)
	}
	return r.fetchProduct(ctx, item.ProductID)
}

// orderAddress derives the one-line address projection. No I/O.
func (r *root) orderAddress(ctx context.Context, source any, args map[string]any) (any, error) {
	order, ok := source.(*entity.Order)
	if !ok {
		return nil, fmt.Errorf("address requires an order parent, got %T", source)
	}
	if order.ShippingAddress == nil {
		return nil, nil
	}
	return entity.FormatAddress(order.ShippingAddress), nil
}

// createOrder forwards exactly one POST to the order service. The item
// list is validated before any I/O so a rejected mutation never leaves a
// partial write behind; the order service owns total computation and
// payment orchestration.
func (r *root) createOrder(ctx context.Context, source any, args map[string]any) (any, error) {
	userID, err := argString(args, "userId")
	if err != nil {
		return nil, err
	}
	items, _ := args["items"].([]any)
	if len(items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}

	payloadItems := make([]map[string]any, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("items[%d]: expected object, got %T", i, it)
		}
		payloadItems = append(payloadItems, map[string]any{
			"product_id": m["productId"],
			"quantity":   m["quantity"],
			"price":      m["price"],
			"name":       m["name"],
		})
	}

	payload := map[string]any{
		"user_id":          userID,
		"items":            payloadItems,
		"shipping_address": shippingAddressPayload(args["shippingAddress"]),
	}
	if method, ok := args["paymentMethod"].(string); ok {
		payload["payment_method"] = method
	}

	data, err := r.client.Post(ctx, ServiceOrder, "/api/v1/orders", payload)
	if err != nil {
		return nil, fieldError(err)
	}
	order, err := entity.DecodeOrder(data)
	if err != nil {
		return nil, fmt.Errorf("decode created order: %w", err)
	}
	return order, nil
}

func (r *root) fetchProduct(ctx context.Context, id string) (*entity.Product, error) {
	data, err := r.client.Get(ctx, ServiceCatalog, "/api/v1/catalog/items/"+id, nil)
	if err != nil {
		return nil, fieldError(err)
	}
	product, err := entity.DecodeProduct(data)
	if err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return product, nil
}

func (r *root) fetchUserOrders(ctx context.Context, userID string, limit int) (any, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	data, err := r.client.Get(ctx, ServiceOrder, "/api/v1/orders/user/"+userID, q)
	if err != nil {
		return nil, fieldError(err)
	}
	orders, err := entity.DecodeOrderPage(data)
	if err != nil {
		return nil, fmt.Errorf("decode user orders: %w", err)
	}
	return orders, nil
}

// shippingAddressPayload maps the graph's camelCase address input to the
// order service's snake_case structure. Absent components are omitted.
func shippingAddressPayload(v any) map[string]any {
	in, _ := v.(map[string]any)
	out := map[string]any{}
	for graph, wire := range map[string]string{
		"street":  "street",
		"city":    "city",
		"state":   "state",
		"country": "country",
		"zipCode": "zip_code",
	} {
		if val, ok := in[graph]; ok && val != nil {
			out[wire] = val
		}
	}
	return out
}

// fieldError maps a backend failure to its graph-facing message. 404
// becomes the bare "not found"; everything else already carries the
// service-qualified message from the client.
func fieldError(err error) error {
	if backend.IsNotFound(err) {
		return errors.New("not found")
	}
	return err
}

func argString(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", name)
	}
	return v, nil
}

func argInt(args map[string]any, name string) (int, error) {
	switch v := args[name].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("argument %q must be an integer", name)
}
