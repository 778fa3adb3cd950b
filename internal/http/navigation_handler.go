package http

import (
	"errors"
	"net/http"

	"github.com/tuanvumaihuynh/bizsuite/internal/access"
)

var errMissingRoute = errors.New("route is required")

type navigationItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

type navigationResponse struct {
	DefaultRoute string           `json:"default_route"`
	Routes       []navigationItem `json:"routes"`
}

// navigationHandler tells the client which pages the caller's role may open.
type navigationHandler struct{}

func (navigationHandler) GetNavigation(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	routes := access.PermittedRoutes(caller.Role)
	items := make([]navigationItem, 0, len(routes))
	for _, route := range routes {
		items = append(items, navigationItem{Path: route.Path(), Label: route.Label()})
	}

	return writeJSON(w, http.StatusOK, navigationResponse{
		DefaultRoute: access.DefaultRoute(caller.Role).Path(),
		Routes:       items,
	})
}

func (navigationHandler) CheckRoute(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	var path *string
	if err := queryParam(r, "route", &path); err != nil {
		return err
	}
	if path == nil {
		return invalidQuery("route", errMissingRoute)
	}

	route, err := access.ParseRoute(*path)
	if err != nil {
		return invalidQuery("route", err)
	}

	return writeJSON(w, http.StatusOK, access.Guard(access.Session{
		Authenticated: true,
		Role:          caller.Role,
	}, route))
}
