// Package cart is the in-memory shopping cart of a storefront session.
//
// A Cart is an owned value: create one per session with New and pass it to
// whatever needs it. Every mutation is synchronous and subscribers see the
// new state before the mutating call returns.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-altura/internal/product"
)

// Key identifies a cart line for merging. Quantity is not part of it.
type Key struct {
	ProductID string
	Weight    string
	Roast     string
	Grind     string
}

// Selection is a fully configured product the customer wants to add.
type Selection struct {
	ProductID string
	Name      string
	Option    product.PriceOption
	Roast     string
	Grind     string
}

// Complete reports whether every option group has a value. The add action
// should stay disabled until it does.
func (s Selection) Complete() bool {
	return s.ProductID != "" && s.Option.Weight != "" && s.Roast != "" && s.Grind != ""
}

func (s Selection) Key() Key {
	return Key{ProductID: s.ProductID, Weight: s.Option.Weight, Roast: s.Roast, Grind: s.Grind}
}

type Item struct {
	ProductID string              `json:"productId"`
	Name      string              `json:"name"`
	Option    product.PriceOption `json:"option"`
	Roast     string              `json:"roast"`
	Grind     string              `json:"grind"`
	Quantity  int                 `json:"quantity"`
}

func (it Item) Key() Key {
	return Key{ProductID: it.ProductID, Weight: it.Option.Weight, Roast: it.Roast, Grind: it.Grind}
}

// Subtotal is amount × quantity.
func (it Item) Subtotal() decimal.Decimal {
	return it.Option.Amount.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Snapshot is what subscribers receive after each mutation.
type Snapshot struct {
	Items []Item
	Total decimal.Decimal
	Count int
}

type Cart struct {
	mu     sync.Mutex
	items  []Item
	subs   map[int]func(Snapshot)
	nextID int
}

func New() *Cart {
	return &Cart{subs: make(map[int]func(Snapshot))}
}

// Add merges sel into the cart: an existing line with the same Key gets its
// quantity bumped, otherwise a new line with quantity 1 is appended.
// Incomplete selections are ignored and Add returns false.
func (c *Cart) Add(sel Selection) bool {
	if !sel.Complete() {
		return false
	}
	c.mutate(func(items []Item) []Item {
		k := sel.Key()
		for i := range items {
			if items[i].Key() == k {
				items[i].Quantity++
				return items
			}
		}
		return append(items, Item{
			ProductID: sel.ProductID,
			Name:      sel.Name,
			Option:    sel.Option,
			Roast:     sel.Roast,
			Grind:     sel.Grind,
			Quantity:  1,
		})
	})
	return true
}

// Remove drops every line of a product, whatever its configuration.
func (c *Cart) Remove(productID string) {
	c.mutate(func(items []Item) []Item {
		out := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				out = append(out, it)
			}
		}
		return out
	})
}

// RemoveVariant drops only the line with key k.
func (c *Cart) RemoveVariant(k Key) {
	c.mutate(func(items []Item) []Item {
		out := items[:0]
		for _, it := range items {
			if it.Key() != k {
				out = append(out, it)
			}
		}
		return out
	})
}

func (c *Cart) Clear() {
	c.mutate(func([]Item) []Item { return nil })
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.items)
}

// Count is the number of units in the cart, shown on the badge.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return count(c.items)
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to be called after every mutation. The returned
// func removes the subscription.
func (c *Cart) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cart) mutate(fn func([]Item) []Item) {
	c.mu.Lock()
	c.items = fn(c.items)
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	// called outside the lock so subscribers may read the cart
	for _, s := range subs {
		s(snap)
	}
}

func (c *Cart) snapshotLocked() Snapshot {
	return Snapshot{
		Items: append([]Item(nil), c.items...),
		Total: total(c.items),
		Count: count(c.items),
	}
}

func total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

func count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
