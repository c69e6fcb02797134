// Package cartstore holds the per-session shopping cart: an ordered list
// of line items plus a transient drawer-open flag. Item mutations are
// written through to the backing Storage immediately; the open flag is
// never persisted and always starts closed.
package cartstore

import "context"

// Item is a single cart line. Quantity stays within [1, MaxQuantity];
// MaxQuantity is the lesser of available stock and any business cap,
// resolved by the caller when the item is added.
type Item struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	PriceCents  int64  `json:"priceCents"`
	Image       string `json:"image,omitempty"`
	Quantity    int    `json:"quantity"`
	Stock       int    `json:"stock"`
	MaxQuantity int    `json:"maxQuantity"`
}

// Cart is the state container for one session. It is not safe for
// concurrent use; callers serialize access per session. Concurrent
// sessions sharing a storage key resolve last-writer-wins.
type Cart struct {
	sessionID string
	storage   Storage
	items     []Item
	isOpen    bool
}

// Load restores the persisted items for the session. The drawer starts
// closed regardless of the state at save time.
func Load(ctx context.Context, storage Storage, sessionID string) (*Cart, error) {
	items, err := storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Cart{sessionID: sessionID, storage: storage, items: items}, nil
}

// AddItem merges the item into the cart. An existing line for the same
// product gains one unit, silently capped at MaxQuantity; otherwise the
// item is appended with quantity 1. Adding always opens the drawer.
func (c *Cart) AddItem(ctx context.Context, item Item) error {
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity = clamp(c.items[i].Quantity+1, c.items[i].MaxQuantity)
			c.isOpen = true
			return c.save(ctx)
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	c.isOpen = true
	return c.save(ctx)
}

// RemoveItem drops every line matching the product. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return c.save(ctx)
}

// UpdateQuantity sets the line quantity, capped at MaxQuantity. A
// quantity of zero or less removes the line. Unknown products are
// ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(ctx, productID)
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = clamp(quantity, c.items[i].MaxQuantity)
		}
	}
	return c.save(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.items = nil
	return c.save(ctx)
}

// ToggleOpen flips the drawer flag. Items are untouched.
func (c *Cart) ToggleOpen() {
	c.isOpen = !c.isOpen
}

// CloseDrawer forces the drawer shut.
func (c *Cart) CloseDrawer() {
	c.isOpen = false
}

// IsOpen reports the drawer state.
func (c *Cart) IsOpen() bool {
	return c.isOpen
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems sums all line quantities. Recomputed on every call.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPriceCents sums unit price times quantity over all lines.
func (c *Cart) TotalPriceCents() int64 {
	var total int64
	for _, item := range c.items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

func (c *Cart) save(ctx context.Context) error {
	return c.storage.Save(ctx, c.sessionID, c.items)
}

func clamp(quantity, max int) int {
	if max > 0 && quantity > max {
		return max
	}
	return quantity
}
