package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
	"github.com/tuanvumaihuynh/bizsuite/internal/http/apierr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
	CurrentUser(ctx context.Context, identity auth.Identity) (model.User, error)
}

// Authenticate requires a bearer token and stores the identity in the request
// context. Requests that change state re-read the user so that a revoked role
// or a disabled account takes effect before the token expires.
func Authenticate(a Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := bearerToken(r)
			if !ok {
				writeError(w, r, logger, apperr.UnauthorizedErr)
				return
			}

			identity, err := a.Authenticate(ctx, token)
			if err != nil {
				writeError(w, r, logger, err)
				return
			}

			if !isSafeMethod(r.Method) {
				user, err := a.CurrentUser(ctx, identity)
				if err != nil {
					writeError(w, r, logger, err)
					return
				}
				identity.Role = user.Role
				identity.Email = user.Email
			}

			next.ServeHTTP(w, r.WithContext(auth.NewIdentityContext(ctx, identity)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if _, encErr := apierr.Write(w, err); encErr != nil {
		logger.WarnContext(r.Context(), "error encoding error response", slog.Any("error", encErr))
	}
}
