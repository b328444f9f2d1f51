// Package reports exporta el reporte filtrado de feedback a formatos tabulares (CSV, PDF).
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/analytics"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

// unknown valor de Role/Position cuando el member ya no existe.
const unknown = "Unknown"

// Columns cabecera del reporte, en orden.
var Columns = []string{
	"Member Name", "Role", "Position", "Project", "Type", "Status", "Reviewer",
	"Description", "Action Items", "Improvement Deadline", "Date",
}

// Row una fila del reporte ya resuelta a texto.
type Row struct {
	MemberName          string
	Role                string
	Position            string
	Project             string
	Type                string
	Status              string
	Reviewer            string
	Description         string
	ActionItems         string
	ImprovementDeadline string
	Date                string // YYYY-MM-DD
}

// Values valores de la fila en el orden de Columns.
func (r Row) Values() []string {
	return []string{
		r.MemberName, r.Role, r.Position, r.Project, r.Type, r.Status, r.Reviewer,
		r.Description, r.ActionItems, r.ImprovementDeadline, r.Date,
	}
}

// Renderer convierte filas en un documento.
type Renderer interface {
	Render(title string, rows []Row) ([]byte, error)
	ContentType() string
	Extension() string
}

// File documento exportado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUseCase exporta el feedback visible para el principal que cumple los filtros.
type ExportUseCase struct {
	reports *analytics.ReportUseCase
	now     func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(reports *analytics.ReportUseCase) *ExportUseCase {
	return &ExportUseCase{reports: reports, now: time.Now}
}

// Export genera el documento con el renderer dado.
func (uc *ExportUseCase) Export(ctx context.Context, p entity.Principal, f dto.FeedbackFilters, r Renderer) (*File, error) {
	list, ds, err := uc.reports.Filtered(ctx, p, f)
	if err != nil {
		return nil, err
	}
	rows := BuildRows(list, ds.Members)
	data, err := r.Render(title(p), rows)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", r.Extension(), err)
	}
	return &File{
		Name:        FileName(p.Role, uc.now(), r.Extension()),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

// BuildRows resuelve cada feedback contra el member vigente; si ya no existe se usa el nombre copiado.
func BuildRows(feedbacks []*entity.Feedback, members []*entity.Member) []Row {
	byUID := make(map[string]*entity.Member, len(members))
	for _, m := range members {
		byUID[m.UID] = m
	}
	rows := make([]Row, 0, len(feedbacks))
	for _, fb := range feedbacks {
		r := Row{
			MemberName:          fb.MemberName,
			Role:                unknown,
			Position:            unknown,
			Project:             fb.Project,
			Type:                string(fb.Type),
			Status:              string(fb.Status),
			Reviewer:            fb.Reviewer,
			Description:         fb.Description,
			ActionItems:         fb.ActionItems,
			ImprovementDeadline: fb.ImprovementDeadline,
			Date:                fb.CreatedAt.Format("2006-01-02"),
		}
		if m, ok := byUID[fb.MemberUID]; ok {
			r.MemberName = m.Name
			r.Role = string(m.Role)
			r.Position = m.Position
		}
		rows = append(rows, r)
	}
	return rows
}

// FileName my_performance_report_YYYY-MM-DD para team_member, performance_report_YYYY-MM-DD para el resto.
func FileName(role entity.Role, at time.Time, ext string) string {
	prefix := "performance_report"
	if role == entity.RoleTeamMember {
		prefix = "my_performance_report"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format("2006-01-02"), ext)
}

func title(p entity.Principal) string {
	if p.Role == entity.RoleTeamMember {
		return "My Performance Report"
	}
	return "Team Performance Report"
}
