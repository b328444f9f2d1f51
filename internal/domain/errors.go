package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	ErrInvalidSubject    = errors.New("destinatario de feedback inválido")
	ErrInvalidRole       = errors.New("rol no asignable")
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	ErrWeakCredential    = errors.New("la contraseña no cumple la política mínima")
	ErrInvalidCredential = errors.New("credenciales inválidas")
	ErrRateLimited       = errors.New("demasiados intentos, intente más tarde")

	ErrPartialFailure = errors.New("operación incompleta")
)

// PartialFailureError indica que una operación de varios pasos dejó estado inconsistente.
// Step identifica el paso que falló para que un operador pueda reconciliar a mano.
type PartialFailureError struct {
	Operation string
	Step      string
	Cause     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: falló el paso %q: %v", e.Operation, e.Step, e.Cause)
}

func (e *PartialFailureError) Unwrap() error { return e.Cause }

// Is permite errors.Is(err, ErrPartialFailure).
func (e *PartialFailureError) Is(target error) bool {
	return target == ErrPartialFailure
}

// NewPartialFailure construye un PartialFailureError.
func NewPartialFailure(operation, step string, cause error) *PartialFailureError {
	return &PartialFailureError{Operation: operation, Step: step, Cause: cause}
}
