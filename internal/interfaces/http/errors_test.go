package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/domain"
)

func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, err) })
	resp, terr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, terr)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{domain.ErrInvalidCredential, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrInvalidSubject, http.StatusUnprocessableEntity, "INVALID_SUBJECT"},
		{domain.ErrInvalidRole, http.StatusUnprocessableEntity, "INVALID_ROLE"},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "INVALID_TRANSITION"},
		{domain.ErrWeakCredential, http.StatusUnprocessableEntity, "WEAK_CREDENTIAL"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := respondWith(t, tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestWriteError_MensajeConContexto(t *testing.T) {
	_, body := respondWith(t, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput))
	assert.Contains(t, body.Message, "nombre vacío")
}

func TestWriteError_FallaParcialIncluyePaso(t *testing.T) {
	err := fmt.Errorf("delete: %w", domain.NewPartialFailure("delete_member", "delete_credential", errors.New("timeout")))
	status, body := respondWith(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "PARTIAL_FAILURE", body.Code)
	assert.Equal(t, "delete_credential", body.Step)
}
