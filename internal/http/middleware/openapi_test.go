package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/bizsuite/api-contract"
	"github.com/tuanvumaihuynh/bizsuite/internal/http/middleware"
)

func TestRequestValidator(t *testing.T) {
	mw, err := middleware.RequestValidator(apicontract.GetSpecBytes(), discardLogger)
	require.NoError(t, err)
	h := mw(okHandler)

	jsonRequest := func(method, target, body string) *http.Request {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("Should accept a request matching the contract", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/login",
			`{"email":"sam@example.com","password":"secret123"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should reject a body missing required fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"sam@example.com"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Code)
	})

	t.Run("Should reject a malformed path parameter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Should pass through paths outside the contract", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequestValidatorInvalidDocument(t *testing.T) {
	_, err := middleware.RequestValidator([]byte("openapi: [not a document"), discardLogger)
	assert.Error(t, err)
}
