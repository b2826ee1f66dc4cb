package entity

import "fmt"

// DecodeProduct maps one catalog item payload to a Product.
func DecodeProduct(data map[string]any) (*Product, error) {
	var p Product
	var err error
	if p.ID, err = reqString(data, "id"); err != nil {
		return nil, err
	}
	if p.Name, err = reqString(data, "name"); err != nil {
		return nil, err
	}
	if p.Description, err = optString(data, "description"); err != nil {
		return nil, err
	}
	if p.Price, err = reqFloat(data, "price"); err != nil {
		return nil, err
	}
	if p.Category, err = reqString(data, "category"); err != nil {
		return nil, err
	}
	if p.Stock, err = intOr(data, "stock", 0); err != nil {
		return nil, err
	}
	if p.ImageURL, err = optString(data, "image_url"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = reqString(data, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = reqString(data, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeProductPage maps a catalog search payload ({items, total, page, ...})
// to the contained products. Pagination envelope fields are dropped; the
// gateway exposes a flat list.
func DecodeProductPage(data map[string]any) ([]*Product, error) {
	items, err := reqList(data, "items")
	if err != nil {
		return nil, err
	}
	out := make([]*Product, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("items[%d]: expected object, got %T", i, it)
		}
		if out[i], err = DecodeProduct(m); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return out, nil
}

// DecodeOrderItem maps one order line payload to an OrderItem.
func DecodeOrderItem(data map[string]any) (*OrderItem, error) {
	var it OrderItem
	var err error
	if it.ProductID, err = reqString(data, "product_id"); err != nil {
		return nil, err
	}
	if it.Quantity, err = reqInt(data, "quantity"); err != nil {
		return nil, err
	}
	if it.Price, err = reqFloat(data, "price"); err != nil {
		return nil, err
	}
	if it.Name, err = reqString(data, "name"); err != nil {
		return nil, err
	}
	return &it, nil
}

// DecodeOrder maps one order payload to an Order. total_amount, status and
// payment_status are passed through exactly as received; the gateway never
// recomputes or normalizes them.
func DecodeOrder(data map[string]any) (*Order, error) {
	var o Order
	var err error
	if o.ID, err = reqString(data, "id"); err != nil {
		return nil, err
	}
	if o.UserID, err = reqString(data, "user_id"); err != nil {
		return nil, err
	}
	items, err := reqList(data, "items")
	if err != nil {
		return nil, err
	}
	o.Items = make([]*OrderItem, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("items[%d]: expected object, got %T", i, it)
		}
		if o.Items[i], err = DecodeOrderItem(m); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	if o.TotalAmount, err = reqFloat(data, "total_amount"); err != nil {
		return nil, err
	}
	status, err := reqString(data, "status")
	if err != nil {
		return nil, err
	}
	o.Status = OrderStatus(status)
	payment, err := reqString(data, "payment_status")
	if err != nil {
		return nil, err
	}
	o.PaymentStatus = PaymentStatus(payment)
	if o.ShippingAddress, err = reqMap(data, "shipping_address"); err != nil {
		return nil, err
	}
	if o.PaymentMethod, err = reqString(data, "payment_method"); err != nil {
		return nil, err
	}
	if o.TrackingNumber, err = optString(data, "tracking_number"); err != nil {
		return nil, err
	}
	if o.Notes, err = optString(data, "notes"); err != nil {
		return nil, err
	}
	if o.CreatedAt, err = reqString(data, "created_at"); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = reqString(data, "updated_at"); err != nil {
		return nil, err
	}
	return &o, nil
}

// DecodeOrderPage maps a user-orders payload ({orders, total, user_id}) to
// the contained orders.
func DecodeOrderPage(data map[string]any) ([]*Order, error) {
	orders, err := reqList(data, "orders")
	if err != nil {
		return nil, err
	}
	out := make([]*Order, len(orders))
	for i, o := range orders {
		m, ok := o.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("orders[%d]: expected object, got %T", i, o)
		}
		if out[i], err = DecodeOrder(m); err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
	}
	return out, nil
}

// DecodeUser maps an identity profile payload to a User.
func DecodeUser(data map[string]any) (*User, error) {
	var u User
	var err error
	if u.ID, err = reqString(data, "id"); err != nil {
		return nil, err
	}
	if u.Username, err = reqString(data, "username"); err != nil {
		return nil, err
	}
	if u.Email, err = reqString(data, "email"); err != nil {
		return nil, err
	}
	if u.FullName, err = optString(data, "full_name"); err != nil {
		return nil, err
	}
	if u.CreatedAt, err = reqString(data, "created_at"); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = reqString(data, "updated_at"); err != nil {
		return nil, err
	}
	return &u, nil
}

// FormatAddress renders the human-readable projection of a shipping
// address. Missing components render as empty segments, matching the
// order service's loose address structure.
func FormatAddress(addr map[string]any) string {
	part := func(key string) string {
		if v, ok := addr[key].(string); ok {
			return v
		}
		return ""
	}
	return fmt.Sprintf("%s, %s, %s", part("street"), part("city"), part("country"))
}
