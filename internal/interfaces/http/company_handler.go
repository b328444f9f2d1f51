package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Current godoc
// @Summary      Empresa del usuario autenticado
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Current(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Current(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
