// Package pdf renderiza el reporte de feedback en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte   │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total / positivos / mejora / abiertos              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Member | Proyecto | Tipo | Estado | Reviewer | ...   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/team-feedback/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOpen    = &props.Color{Red: 180, Green: 90, Blue: 0}
)

// descriptionMax caracteres de la descripción que caben en la celda.
const descriptionMax = 120

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ reports.Renderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa reports.Renderer usando Maroto v2.
type MarotoReportRenderer struct {
	now func() time.Time
}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer {
	return &MarotoReportRenderer{now: time.Now}
}

func (g *MarotoReportRenderer) ContentType() string { return "application/pdf" }
func (g *MarotoReportRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(title string, rows []reports.Row) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("Team Feedback", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rows))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin feedback para los filtros seleccionados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(rows []reports.Row) core.Row {
	var positive, improvement, open int
	for _, r := range rows {
		if r.Type == "positive" {
			positive++
		} else {
			improvement++
		}
		if r.Status == "open" {
			open++
		}
	}
	cell := func(label string, n int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(fmt.Sprint(n), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("Total", len(rows)),
		cell("Positive", positive),
		cell("Improvement", improvement),
		cell("Open", open),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Member", 2),
		h("Project", 2),
		h("Type", 1),
		h("Status", 1),
		h("Reviewer", 2),
		h("Date", 1),
		h("Description", 3),
	)
}

func tableDetailRows(rows []reports.Row) []core.Row {
	result := make([]core.Row, 0, len(rows))
	cell := props.Text{Size: 7.5, Top: 1, Left: 1, Right: 1}
	for _, r := range rows {
		statusProps := cell
		if r.Status == "open" {
			statusProps.Color = colorOpen
			statusProps.Style = fontstyle.Bold
		}
		result = append(result, row.New(12).Add(
			col.New(2).Add(
				text.New(r.MemberName, cell),
				text.New(r.Position, props.Text{Size: 6.5, Top: 5, Left: 1, Color: colorGray}),
			),
			col.New(2).Add(text.New(r.Project, cell)),
			col.New(1).Add(text.New(r.Type, cell)),
			col.New(1).Add(text.New(r.Status, statusProps)),
			col.New(2).Add(text.New(r.Reviewer, cell)),
			col.New(1).Add(text.New(r.Date, cell)),
			col.New(3).Add(text.New(truncate(r.Description, descriptionMax), cell)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// truncate corta s a n runas y agrega "..." si sobró texto.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n]) + "..."
}
