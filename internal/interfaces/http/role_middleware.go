package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

// LocalPrincipal key del principal resuelto en c.Locals.
const LocalPrincipal = "principal"

// principalResolver es el contrato mínimo para resolver la identidad vigente.
// Lo implementa *auth.AuthUseCase; el uso de interfaz evita el import circular.
type principalResolver interface {
	ResolvePrincipal(ctx context.Context, uid string) (*entity.Principal, error)
}

// PrincipalMiddleware resuelve el principal desde el registro Member en cada petición.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUID).
//
// Comportamiento:
//   - 401 Unauthorized → el member ya no existe (fue dado de baja).
//   - 503 Service Unavailable → fallo al consultar el almacén.
//   - El rol del registro reemplaza al del token: un cambio de rol aplica sin volver a entrar.
func PrincipalMiddleware(resolver principalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := GetUID(c)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "uid no encontrado en el token",
			})
		}

		p, err := resolver.ResolvePrincipal(c.UserContext(), uid)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:    "UNAUTHORIZED",
					Message: "el usuario ya no tiene acceso",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PRINCIPAL_CHECK_FAILED",
				Message: "no se pudo resolver el usuario, intente más tarde",
			})
		}

		c.Locals(LocalPrincipal, *p)
		c.Locals(LocalRole, string(p.Role))
		c.Locals(LocalCompanyID, p.CompanyID)
		c.Locals(LocalUserID, p.MemberID)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal cargado por PrincipalMiddleware.
func GetPrincipal(c *fiber.Ctx) (entity.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(entity.Principal)
	return p, ok
}

// RequireRole deja pasar solo a los roles indicados.
// Sin rol en el contexto responde 401 MISSING_ROLE; con otro rol, 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no puede realizar esta acción",
			})
		}
		return c.Next()
	}
}

// currentPrincipal es GetPrincipal con domain.ErrUnauthorized cuando falta.
func currentPrincipal(c *fiber.Ctx) (entity.Principal, error) {
	p, ok := GetPrincipal(c)
	if !ok {
		return entity.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}
