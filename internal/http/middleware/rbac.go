package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/bizsuite/internal/access"
	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
)

// RequirePermission rejects requests whose role may not perform action on
// resource. It must run after Authenticate.
func RequirePermission(resource access.Resource, action access.Action, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !permitted(w, r, resource, action, logger) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authorize is RequirePermission with the action derived from the request
// method: GET reads, DELETE deletes and anything else writes.
func Authorize(resource access.Resource, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !permitted(w, r, resource, ActionForMethod(r.Method), logger) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ActionForMethod(method string) access.Action {
	switch method {
	case http.MethodGet, http.MethodHead:
		return access.ActionRead
	case http.MethodDelete:
		return access.ActionDelete
	default:
		return access.ActionWrite
	}
}

func permitted(w http.ResponseWriter, r *http.Request, resource access.Resource, action access.Action, logger *slog.Logger) bool {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, logger, apperr.UnauthorizedErr)
		return false
	}
	if !access.Allowed(identity.Role, resource, action) {
		logger.InfoContext(r.Context(), "permission denied",
			slog.Int64("user_id", identity.UserID),
			slog.String("role", identity.Role.String()),
			slog.String("resource", resource.String()),
			slog.String("action", action.String()),
		)
		writeError(w, r, logger, apperr.ForbiddenErr)
		return false
	}
	return true
}
