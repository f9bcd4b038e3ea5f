package permission

import "github.com/frahmantamala/crm-console/internal"

// Checker is anything that can answer a permission question for the current
// user, typically a session.
type Checker interface {
	HasPermission(resource Resource, action Action) bool
}

type NavItem struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Resource Resource `json:"resource"`
}

var navigation = []NavItem{
	{Name: "Dashboard", Path: "/", Resource: ResourceDashboard},
	{Name: "Inventory", Path: "/inventory", Resource: ResourceInventory},
	{Name: "Orders", Path: "/orders", Resource: ResourceOrders},
	{Name: "Reports", Path: "/reports", Resource: ResourceReports},
	{Name: "Settings", Path: "/settings", Resource: ResourceSettings},
	{Name: "Users", Path: "/users", Resource: ResourceUsers},
}

// NavItems returns the entries c may read, in menu order.
func NavItems(c Checker) []NavItem {
	items := make([]NavItem, 0, len(navigation))
	if c == nil {
		return items
	}
	for _, item := range navigation {
		if c.HasPermission(item.Resource, ActionRead) {
			items = append(items, item)
		}
	}
	return items
}

// RoleChecker answers for a bare role, without a session around it.
type RoleChecker Role

func (r RoleChecker) HasPermission(resource Resource, action Action) bool {
	return HasPermission(Role(r), resource, action)
}

// Require returns internal.ErrAccessDenied unless c holds the permission.
// A nil checker holds nothing.
func Require(c Checker, resource Resource, action Action) error {
	if c == nil || !c.HasPermission(resource, action) {
		return internal.ErrAccessDenied
	}
	return nil
}
