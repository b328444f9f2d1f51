// Package analytics contiene las proyecciones de solo lectura sobre members y feedback:
// estadísticas del dashboard y el reporte filtrado.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

const recentActivitySize = 5 // feedbacks en el widget de actividad reciente

// DashboardStats cuenta por tipo y estado el feedback visible para p.
// Los slices de entrada no se modifican; lo que esté fuera del alcance de p se descarta.
func DashboardStats(p entity.Principal, members []*entity.Member, feedbacks []*entity.Feedback) (dto.DashboardStatsDTO, error) {
	memberScope, feedbackScope, err := access.ScopeFor(p)
	if err != nil {
		return dto.DashboardStatsDTO{}, err
	}

	visible := make([]*entity.Feedback, 0, len(feedbacks))
	for _, fb := range feedbacks {
		if feedbackScope.Matches(fb) {
			visible = append(visible, fb)
		}
	}

	var out dto.DashboardStatsDTO
	for _, fb := range visible {
		switch fb.Type {
		case entity.FeedbackPositive:
			out.Positive++
		case entity.FeedbackImprovement:
			out.Improvement++
		}
		switch fb.Status {
		case entity.StatusOpen:
			out.Open++
		case entity.StatusClosed:
			out.Closed++
		}
	}
	out.TotalFeedback = len(visible)
	out.PositiveRate = percentage(out.Positive, out.TotalFeedback)

	if p.Role != entity.RoleTeamMember {
		n := 0
		for _, m := range members {
			if memberScope.Matches(m) && m.Role != entity.RoleAdmin {
				n++
			}
		}
		out.TeamMembers = &n
	}

	sortNewestFirst(visible)
	if len(visible) > recentActivitySize {
		visible = visible[:recentActivitySize]
	}
	out.RecentActivity = make([]dto.FeedbackResponse, 0, len(visible))
	for _, fb := range visible {
		out.RecentActivity = append(out.RecentActivity, usecase.FeedbackToResponse(fb))
	}
	return out, nil
}

// FilteredFeedback aplica los filtros en conjunción y devuelve un slice nuevo, más reciente primero.
// DateRange se mide contra CreatedAt: week 7 días, month 1 mes, quarter 3 meses calendario.
func FilteredFeedback(feedbacks []*entity.Feedback, f dto.FeedbackFilters, now time.Time) ([]*entity.Feedback, error) {
	since, err := rangeStart(f.DateRange, now)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(f.Search))

	out := make([]*entity.Feedback, 0, len(feedbacks))
	for _, fb := range feedbacks {
		if f.MemberUID != "" && fb.MemberUID != f.MemberUID {
			continue
		}
		if f.Type != "" && string(fb.Type) != f.Type {
			continue
		}
		if f.Status != "" && string(fb.Status) != f.Status {
			continue
		}
		if !since.IsZero() && fb.CreatedAt.Before(since) {
			continue
		}
		if term != "" && !matchesSearch(fold, fb, term) {
			continue
		}
		out = append(out, fb)
	}
	sortNewestFirst(out)
	return out, nil
}

// Summarize totales de un reporte.
func Summarize(feedbacks []*entity.Feedback) dto.ReportSummaryDTO {
	s := dto.ReportSummaryDTO{Total: len(feedbacks)}
	for _, fb := range feedbacks {
		if fb.Type == entity.FeedbackPositive {
			s.Positive++
		} else {
			s.Improvement++
		}
		if fb.Status == entity.StatusOpen {
			s.Open++
		}
	}
	return s
}

func rangeStart(dateRange string, now time.Time) (time.Time, error) {
	switch dateRange {
	case "", dto.DateRangeAll:
		return time.Time{}, nil
	case dto.DateRangeWeek:
		return now.AddDate(0, 0, -7), nil
	case dto.DateRangeMonth:
		return now.AddDate(0, -1, 0), nil
	case dto.DateRangeQuarter:
		return now.AddDate(0, -3, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: rango de fechas %q", domain.ErrInvalidInput, dateRange)
	}
}

func matchesSearch(fold cases.Caser, fb *entity.Feedback, term string) bool {
	for _, field := range []string{fb.Project, fb.Description, fb.ActionItems, fb.Reviewer, fb.MemberName} {
		if strings.Contains(fold.String(field), term) {
			return true
		}
	}
	return false
}

func percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part) * 100).Div(decimal.NewFromInt(int64(total))).Round(2)
}

// sortNewestFirst ordena in place; los llamadores pasan siempre un slice propio.
func sortNewestFirst(list []*entity.Feedback) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
