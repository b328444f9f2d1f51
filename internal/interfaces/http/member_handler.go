package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
)

// MemberHandler maneja las peticiones HTTP del directorio de members (protegido).
type MemberHandler struct {
	uc *usecase.MemberUseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(uc *usecase.MemberUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// List godoc
// @Summary      Listar members visibles
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MemberListResponse
// @Router       /api/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener member por ID
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del member"
// @Success      200  {object}  dto.MemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [get]
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.Get(c.UserContext(), p, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear member con acceso
// @Description  Sin password se genera una y el member debe cambiarla al entrar.
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMemberRequest  true  "Datos del member"
// @Success      201   {object}  dto.CreateMemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateMemberRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), p, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar member
// @Description  email es inmutable; campos desconocidos se rechazan.
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del member"
// @Param        body  body  dto.UpdateMemberRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/members/{id} [patch]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	var in dto.UpdateMemberRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), p, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja un member
// @Description  Borra su feedback, el registro y la credencial, en ese orden.
// @Tags         members
// @Security     Bearer
// @Param        id   path  string  true  "ID del member"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	if err := h.uc.Delete(c.UserContext(), p, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
