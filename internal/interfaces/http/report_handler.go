package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/internal/application/analytics"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/reports"
)

// ReportHandler maneja el dashboard, el reporte filtrado y sus exportaciones.
type ReportHandler struct {
	reports *analytics.ReportUseCase
	export  *reports.ExportUseCase
	csv     reports.Renderer
	pdf     reports.Renderer
}

// NewReportHandler construye el handler con los renderers de CSV y PDF.
func NewReportHandler(uc *analytics.ReportUseCase, export *reports.ExportUseCase, csv, pdf reports.Renderer) *ReportHandler {
	return &ReportHandler{reports: uc, export: export, csv: csv, pdf: pdf}
}

// Dashboard godoc
// @Summary      Estadísticas del dashboard
// @Description  Para team_member solo cuenta su propio feedback.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.Dashboard(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Feedbacks godoc
// @Summary      Reporte de feedback filtrado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        member_uid  query  string  false  "uid del member"
// @Param        type        query  string  false  "positive | improvement"
// @Param        status      query  string  false  "open | closed"
// @Param        date_range  query  string  false  "all | week | month | quarter"
// @Param        search      query  string  false  "texto en member, proyecto o descripción"
// @Success      200  {object}  dto.FeedbackReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/feedbacks [get]
func (h *ReportHandler) Feedbacks(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	var f dto.FeedbackFilters
	if ok, err := decodeQuery(c, &f); !ok {
		return err
	}
	out, err := h.reports.Report(c.UserContext(), p, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar reporte filtrado a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/feedbacks.csv [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	return h.download(c, h.csv)
}

// ExportPDF godoc
// @Summary      Exportar reporte filtrado a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/reports/feedbacks.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	return h.download(c, h.pdf)
}

func (h *ReportHandler) download(c *fiber.Ctx, r reports.Renderer) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return writeError(c, err)
	}
	var f dto.FeedbackFilters
	if ok, err := decodeQuery(c, &f); !ok {
		return err
	}
	file, err := h.export.Export(c.UserContext(), p, f, r)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Data)
}
