package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/access"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

func TestIsPermitted(t *testing.T) {
	want := map[access.Route][]model.Role{
		access.RouteDashboard: {model.RoleAdmin, model.RoleSales, model.RoleInventory, model.RoleCashier},
		access.RouteCRM:       {model.RoleAdmin, model.RoleSales},
		access.RouteInventory: {model.RoleAdmin, model.RoleInventory},
		access.RoutePOS:       {model.RoleAdmin, model.RoleCashier},
		access.RouteReports:   {model.RoleAdmin},
		access.RouteSettings:  {model.RoleAdmin},
	}

	for _, route := range access.Routes() {
		for _, role := range model.Roles() {
			expected := false
			for _, r := range want[route] {
				if r == role {
					expected = true
				}
			}
			assert.Equal(t, expected, access.IsPermitted(role, route), "%s on %s", role, route)
		}
	}

	t.Run("Should deny unspecified roles and routes", func(t *testing.T) {
		assert.False(t, access.IsPermitted(model.RoleUnspecified, access.RouteDashboard))
		assert.False(t, access.IsPermitted(model.RoleAdmin, access.RouteUnspecified))
	})
}

func TestDefaultRoute(t *testing.T) {
	tests := []struct {
		role model.Role
		want access.Route
	}{
		{model.RoleAdmin, access.RouteDashboard},
		{model.RoleSales, access.RouteCRM},
		{model.RoleInventory, access.RouteInventory},
		{model.RoleCashier, access.RoutePOS},
		{model.RoleUnspecified, access.RouteUnspecified},
	}

	for _, tt := range tests {
		t.Run("Should land "+tt.role.String()+" on its default route", func(t *testing.T) {
			assert.Equal(t, tt.want, access.DefaultRoute(tt.role))
		})
	}

	t.Run("Should always permit the default route", func(t *testing.T) {
		for _, role := range model.Roles() {
			assert.True(t, access.IsPermitted(role, access.DefaultRoute(role)), role.String())
		}
	})
}

func TestPermittedRoutes(t *testing.T) {
	assert.Equal(t, []access.Route{access.RouteDashboard, access.RoutePOS}, access.PermittedRoutes(model.RoleCashier))
	assert.Equal(t, access.Routes(), access.PermittedRoutes(model.RoleAdmin))
	assert.Empty(t, access.PermittedRoutes(model.RoleUnspecified))
}

func TestGuard(t *testing.T) {
	t.Run("Should redirect anonymous sessions to login", func(t *testing.T) {
		d := access.Guard(access.Session{}, access.RouteDashboard)

		assert.False(t, d.Allowed)
		assert.Equal(t, access.LoginPath, d.Redirect)
	})

	t.Run("Should redirect to the role's default route", func(t *testing.T) {
		d := access.Guard(access.Session{Authenticated: true, Role: model.RoleCashier}, access.RouteCRM)

		assert.False(t, d.Allowed)
		assert.Equal(t, "/pos", d.Redirect)
	})

	t.Run("Should allow permitted routes", func(t *testing.T) {
		d := access.Guard(access.Session{Authenticated: true, Role: model.RoleSales}, access.RouteCRM)

		assert.True(t, d.Allowed)
		assert.Empty(t, d.Redirect)
	})
}

func TestParseRoute(t *testing.T) {
	t.Run("Should resolve nested paths to their top-level route", func(t *testing.T) {
		r, err := access.ParseRoute("/crm/leads/4")
		require.NoError(t, err)
		assert.Equal(t, access.RouteCRM, r)

		r, err = access.ParseRoute("POS")
		require.NoError(t, err)
		assert.Equal(t, access.RoutePOS, r)
	})

	t.Run("Should reject unknown paths", func(t *testing.T) {
		_, err := access.ParseRoute("/admin")
		assert.Error(t, err)

		_, err = access.ParseRoute("")
		assert.Error(t, err)
	})
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		resource access.Resource
		action   access.Action
		want     bool
	}{
		{"Should let admins manage users", model.RoleAdmin, access.ResourceUsers, access.ActionDelete, true},
		{"Should keep sales away from users", model.RoleSales, access.ResourceUsers, access.ActionRead, false},
		{"Should let sales write leads", model.RoleSales, access.ResourceLeads, access.ActionWrite, true},
		{"Should keep cashiers away from leads", model.RoleCashier, access.ResourceLeads, access.ActionRead, false},
		{"Should let cashiers read the catalog", model.RoleCashier, access.ResourceCatalog, access.ActionRead, true},
		{"Should keep cashiers from editing the catalog", model.RoleCashier, access.ResourceCatalog, access.ActionWrite, false},
		{"Should let inventory edit the catalog", model.RoleInventory, access.ResourceCatalog, access.ActionWrite, true},
		{"Should let cashiers use the till", model.RoleCashier, access.ResourcePOS, access.ActionWrite, true},
		{"Should keep inventory off the till", model.RoleInventory, access.ResourcePOS, access.ActionWrite, false},
		{"Should keep reports admin-only", model.RoleSales, access.ResourceReports, access.ActionRead, false},
		{"Should let everyone read the dashboard", model.RoleInventory, access.ResourceDashboard, access.ActionRead, true},
		{"Should deny unknown resources", model.RoleAdmin, access.ResourceUnspecified, access.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.Allowed(tt.role, tt.resource, tt.action))
		})
	}
}
