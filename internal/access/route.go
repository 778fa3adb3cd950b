// Package access decides which pages and API resources a role may reach.
package access

import (
	"fmt"
	"strings"
)

// Route is a top-level page of the application.
type Route uint8

const (
	RouteUnspecified Route = iota
	RouteDashboard
	RouteCRM
	RouteInventory
	RoutePOS
	RouteReports
	RouteSettings
)

// LoginPath is where sessions without an identity are sent.
const LoginPath = "/auth/login"

var (
	routePaths  = []string{"", "/dashboard", "/crm", "/inventory", "/pos", "/reports", "/settings"}
	routeLabels = []string{"", "Dashboard", "CRM", "Inventory", "Point of Sale", "Reports", "Settings"}
)

// Routes lists every route in sidebar order.
func Routes() []Route {
	return []Route{RouteDashboard, RouteCRM, RouteInventory, RoutePOS, RouteReports, RouteSettings}
}

// ParseRoute resolves a path such as "/crm" or "/crm/leads/4" to its top-level
// route.
func ParseRoute(path string) (Route, error) {
	p := "/" + strings.Trim(strings.ToLower(strings.TrimSpace(path)), "/")
	if i := strings.IndexByte(p[1:], '/'); i >= 0 {
		p = p[:i+1]
	}
	for i := 1; i < len(routePaths); i++ {
		if routePaths[i] == p {
			return Route(i), nil
		}
	}
	return RouteUnspecified, fmt.Errorf("unknown route: %q", path)
}

func (r Route) Path() string {
	if int(r) < len(routePaths) {
		return routePaths[r]
	}
	return ""
}

func (r Route) Label() string {
	if int(r) < len(routeLabels) {
		return routeLabels[r]
	}
	return ""
}

func (r Route) String() string {
	if p := r.Path(); p != "" {
		return p
	}
	return fmt.Sprintf("Route(%d)", r)
}

func (r Route) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Route) UnmarshalText(text []byte) error {
	v, err := ParseRoute(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
