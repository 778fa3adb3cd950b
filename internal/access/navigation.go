package access

import (
	"slices"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

var routeRoles = map[Route][]model.Role{
	RouteDashboard: {model.RoleAdmin, model.RoleSales, model.RoleInventory, model.RoleCashier},
	RouteCRM:       {model.RoleAdmin, model.RoleSales},
	RouteInventory: {model.RoleAdmin, model.RoleInventory},
	RoutePOS:       {model.RoleAdmin, model.RoleCashier},
	RouteReports:   {model.RoleAdmin},
	RouteSettings:  {model.RoleAdmin},
}

// IsPermitted reports whether role may open route.
func IsPermitted(role model.Role, route Route) bool {
	return slices.Contains(routeRoles[route], role)
}

// DefaultRoute returns the landing page of role, or RouteUnspecified for an
// unknown role.
func DefaultRoute(role model.Role) Route {
	switch role {
	case model.RoleAdmin:
		return RouteDashboard
	case model.RoleSales:
		return RouteCRM
	case model.RoleInventory:
		return RouteInventory
	case model.RoleCashier:
		return RoutePOS
	case model.RoleUnspecified:
		return RouteUnspecified
	default:
		return RouteUnspecified
	}
}

// PermittedRoutes returns the routes role may open, in sidebar order.
func PermittedRoutes(role model.Role) []Route {
	var routes []Route
	for _, r := range Routes() {
		if IsPermitted(role, r) {
			routes = append(routes, r)
		}
	}
	return routes
}

// Session is the identity a guard decision is made for.
type Session struct {
	Authenticated bool
	Role          model.Role
}

// Decision is the outcome of a guard check. Redirect is empty when Allowed.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Guard decides whether session may enter route: sessions without an identity
// go to the login page; roles lacking permission go to their default route.
func Guard(session Session, route Route) Decision {
	if !session.Authenticated {
		return Decision{Redirect: LoginPath}
	}
	if IsPermitted(session.Role, route) {
		return Decision{Allowed: true}
	}
	if def := DefaultRoute(session.Role); def != RouteUnspecified {
		return Decision{Redirect: def.Path()}
	}
	return Decision{Redirect: LoginPath}
}
