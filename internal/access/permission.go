package access

import (
	"slices"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

// Resource is a group of API endpoints sharing one permission set.
type Resource uint8

const (
	ResourceUnspecified Resource = iota
	ResourceUsers
	ResourceLeads
	ResourceCatalog
	ResourceOrders
	ResourcePOS
	ResourceDashboard
	ResourceReports
	ResourceSettings
)

var resourceNames = []string{"", "users", "leads", "catalog", "orders", "pos", "dashboard", "reports", "settings"}

func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return "unknown"
}

type Action uint8

const (
	ActionRead Action = iota + 1
	ActionWrite
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type grant struct {
	read, write, delete []model.Role
}

var (
	admin     = []model.Role{model.RoleAdmin}
	everyone  = []model.Role{model.RoleAdmin, model.RoleSales, model.RoleInventory, model.RoleCashier}
	salesTeam = []model.Role{model.RoleAdmin, model.RoleSales}
	stockTeam = []model.Role{model.RoleAdmin, model.RoleInventory}
	tillTeam  = []model.Role{model.RoleAdmin, model.RoleCashier}
)

var grants = map[Resource]grant{
	ResourceUsers:     {read: admin, write: admin, delete: admin},
	ResourceLeads:     {read: salesTeam, write: salesTeam, delete: admin},
	ResourceCatalog:   {read: everyone, write: stockTeam, delete: stockTeam},
	ResourceOrders:    {read: []model.Role{model.RoleAdmin, model.RoleSales, model.RoleCashier}, write: tillTeam, delete: admin},
	ResourcePOS:       {read: tillTeam, write: tillTeam, delete: tillTeam},
	ResourceDashboard: {read: everyone},
	ResourceReports:   {read: admin},
	ResourceSettings:  {read: everyone, write: admin},
}

// Allowed reports whether role may perform action on resource.
func Allowed(role model.Role, resource Resource, action Action) bool {
	g, ok := grants[resource]
	if !ok {
		return false
	}
	var roles []model.Role
	switch action {
	case ActionRead:
		roles = g.read
	case ActionWrite:
		roles = g.write
	case ActionDelete:
		roles = g.delete
	}
	return slices.Contains(roles, role)
}
