package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
	"github.com/tuanvumaihuynh/bizsuite/internal/http/apierr"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

const maxBodyBytes = 1 << 20 // 1 MB

// handlerFunc is an http handler whose error is turned into an API error
// response.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Service) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if _, err := apierr.Write(w, err); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(r *http.Request, v validator.Validator, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationErr.WithMsg("request body is required")
		}
		return apperr.ValidationErr.WrapParent(err).WithMsg("invalid request body")
	}
	if err := v.Validate(dst); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}
	return nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	var id int64
	if err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		}); err != nil {
		return 0, apperr.ValidationErr.WrapParent(err).WithMsg(fmt.Sprintf("invalid path parameter %s", name))
	}
	if id <= 0 {
		return 0, apperr.ValidationErr.WithMsg(fmt.Sprintf("invalid path parameter %s", name))
	}
	return id, nil
}

// queryParam binds the optional query parameter name into dest, a pointer to
// a pointer.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return invalidQuery(name, err)
	}
	return nil
}

func identity(r *http.Request) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return auth.Identity{}, apperr.UnauthorizedErr
	}
	return id, nil
}

func invalidQuery(name string, err error) error {
	return apperr.ValidationErr.WrapParent(err).WithMsg(fmt.Sprintf("invalid query parameter %s", name))
}
