package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
)

// FeedbackHandler maneja registro, listado y cambio de estado de feedback.
type FeedbackHandler struct {
	uc *usecase.FeedbackUseCase
}

// NewFeedbackHandler construye el handler.
func NewFeedbackHandler(uc *usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

// List godoc
// @Summary      Listar feedback visible
// @Tags         feedbacks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FeedbackListResponse
// @Router       /api/feedbacks [get]
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
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

// Submit godoc
// @Summary      Registrar feedback
// @Description  improvement_deadline (dd/mm/yyyy) es obligatoria para type=improvement.
// @Tags         feedbacks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitFeedbackRequest  true  "Feedback"
// @Success      201   {object}  dto.FeedbackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/feedbacks [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SubmitFeedbackRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Submit(c.UserContext(), p, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ToggleStatus godoc
// @Summary      Alternar estado open/closed de un feedback de mejora
// @Tags         feedbacks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del feedback"
// @Success      200  {object}  dto.FeedbackResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/feedbacks/{id}/status [patch]
func (h *FeedbackHandler) ToggleStatus(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.ToggleStatus(c.UserContext(), p, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
