package order

import (
	"github.com/frahmantamala/crm-console/internal"
)

type PatchState string

const (
	PatchPending  PatchState = "pending"
	PatchApplied  PatchState = "applied"
	PatchReverted PatchState = "reverted"
)

// Patch is a status change that has been sent to the backend but is not
// yet visible in the cache.
type Patch struct {
	OrderID   string
	DisplayID string
	From      Status
	To        Status
	State     PatchState
	Err       error
}

// Begin opens a pending patch. Selecting the current status is rejected;
// the status picker never offers an unchanged value, so no request would be
// sent for it anyway. Transitions are not otherwise restricted. An order the
// cache does not know yet is allowed; the backend decides.
func (c *Cache) Begin(orderID string, to Status) (*Patch, error) {
	p := &Patch{OrderID: orderID, To: to, State: PatchPending}
	if current, ok := c.Find(orderID); ok {
		if current.Status == to {
			return nil, internal.ErrStatusUnchanged
		}
		p.From = current.Status
		p.DisplayID = current.OrderID
	}
	return p, nil
}

// Apply writes the new status into the cached order with the matching id,
// leaving every other order untouched. Fetches issued before the patch can
// no longer replace the list.
func (c *Cache) Apply(p *Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Order, len(c.orders))
	copy(next, c.orders)
	for i := range next {
		if next[i].ID == p.OrderID {
			next[i].Status = p.To
		}
	}
	c.orders = next
	c.guard.Raise()
	p.State = PatchApplied
}

// Revert closes the patch without touching the cache.
func (c *Cache) Revert(p *Patch, cause error) {
	p.State = PatchReverted
	p.Err = cause
}
