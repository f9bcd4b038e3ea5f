package order

import (
	"sync"

	"github.com/frahmantamala/crm-console/internal/core/sequence"
)

// Cache holds the last accepted order list. Fetch results are applied only
// when their ticket is still current, so a slow response never overwrites a
// newer one.
type Cache struct {
	mu     sync.RWMutex
	guard  sequence.Guard
	orders []Order
	loaded bool
}

func NewCache() *Cache {
	return &Cache{}
}

// Ticket must be taken before the fetch it belongs to is sent.
func (c *Cache) Ticket() uint64 {
	return c.guard.Issue()
}

// Replace stores orders if ticket is still current and reports whether it
// did.
func (c *Cache) Replace(ticket uint64, orders []Order) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.guard.Accept(ticket) {
		return false
	}
	c.orders = cloneOrders(orders)
	c.loaded = true
	return true
}

// Snapshot returns a deep copy the caller may modify.
func (c *Cache) Snapshot() []Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneOrders(c.orders)
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Find looks an order up by its backend id.
func (c *Cache) Find(id string) (Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.orders {
		if c.orders[i].ID == id {
			return c.orders[i].Clone(), true
		}
	}
	return Order{}, false
}
