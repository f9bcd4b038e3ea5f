// Package permission holds the role matrix the console uses to decide which
// views and actions to offer. The backend remains the authority; the matrix
// only mirrors it so the console can hide what would be refused.
package permission

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleViewer     Role = "viewer"
)

type Resource string

const (
	ResourceDashboard Resource = "dashboard"
	ResourceInventory Resource = "inventory"
	ResourceOrders    Resource = "orders"
	ResourceReports   Resource = "reports"
	ResourceSettings  Resource = "settings"
	ResourceUsers     Resource = "users"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
	ActionStock Action = "stock"
)

type grant uint8

const (
	canRead grant = 1 << iota
	canWrite
	canStock
)

func (g grant) allows(a Action) bool {
	switch a {
	case ActionRead:
		return g&canRead != 0
	case ActionWrite:
		return g&canWrite != 0
	case ActionStock:
		return g&canStock != 0
	}
	return false
}

var matrix = map[Role]map[Resource]grant{
	RoleSuperadmin: {
		ResourceDashboard: canRead | canWrite,
		ResourceInventory: canRead | canWrite | canStock,
		ResourceOrders:    canRead | canWrite,
		ResourceReports:   canRead | canWrite,
		ResourceSettings:  canRead | canWrite,
		ResourceUsers:     canRead | canWrite,
	},
	RoleAdmin: {
		ResourceDashboard: canRead | canWrite,
		ResourceInventory: canRead | canWrite | canStock,
		ResourceOrders:    canRead | canWrite,
		ResourceReports:   canRead | canWrite,
		ResourceSettings:  canRead | canWrite,
		ResourceUsers:     0,
	},
	RoleManager: {
		ResourceDashboard: canRead,
		ResourceInventory: canRead | canStock,
		ResourceOrders:    canRead | canWrite,
		ResourceReports:   canRead,
		ResourceSettings:  0,
		ResourceUsers:     0,
	},
	RoleViewer: {
		ResourceDashboard: canRead,
		ResourceInventory: canRead,
		ResourceOrders:    canRead,
		ResourceReports:   canRead,
		ResourceSettings:  0,
		ResourceUsers:     0,
	},
}

var (
	roles     = []Role{RoleSuperadmin, RoleAdmin, RoleManager, RoleViewer}
	resources = []Resource{ResourceDashboard, ResourceInventory, ResourceOrders, ResourceReports, ResourceSettings, ResourceUsers}
	actions   = []Action{ActionRead, ActionWrite, ActionStock}
)

// HasPermission reports whether role may perform action on resource.
// Unknown roles, resources and actions are never allowed.
func HasPermission(role Role, resource Resource, action Action) bool {
	byResource, ok := matrix[role]
	if !ok {
		return false
	}
	return byResource[resource].allows(action)
}

// Actions lists what role may do on resource, in read, write, stock order.
func Actions(role Role, resource Resource) []Action {
	var out []Action
	for _, a := range actions {
		if HasPermission(role, resource, a) {
			out = append(out, a)
		}
	}
	return out
}

// Grants returns the full resource to actions map for role, for clients that
// render their own navigation.
func Grants(role Role) map[Resource][]Action {
	out := make(map[Resource][]Action, len(resources))
	for _, res := range resources {
		out[res] = Actions(role, res)
		if out[res] == nil {
			out[res] = []Action{}
		}
	}
	return out
}

func Roles() []Role {
	return append([]Role(nil), roles...)
}

func Resources() []Resource {
	return append([]Resource(nil), resources...)
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := matrix[r]
	return r, ok
}
