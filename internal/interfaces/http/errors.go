package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings en orden de prioridad; el primero que coincide con errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrInvalidCredential, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autenticado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "el recurso cambió, reintente"},
	{domain.ErrInvalidSubject, fiber.StatusUnprocessableEntity, "INVALID_SUBJECT", ""},
	{domain.ErrInvalidRole, fiber.StatusUnprocessableEntity, "INVALID_ROLE", ""},
	{domain.ErrInvalidTransition, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION", ""},
	{domain.ErrWeakCredential, fiber.StatusUnprocessableEntity, "WEAK_CREDENTIAL", ""},
	{domain.ErrRateLimited, fiber.StatusTooManyRequests, "RATE_LIMITED", ""},
}

// writeError traduce un error de dominio a dto.ErrorResponse con su código HTTP.
// Mensaje vacío en la tabla = se usa el del error (incluye el contexto envuelto).
func writeError(c *fiber.Ctx, err error) error {
	var partial *domain.PartialFailureError
	if errors.As(err, &partial) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "PARTIAL_FAILURE",
			Message: "la operación quedó incompleta y requiere revisión",
			Step:    partial.Step,
		})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
