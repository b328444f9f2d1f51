package dto

import "github.com/shopspring/decimal"

// Rangos de fecha aceptados por los reportes.
const (
	DateRangeAll     = "all"
	DateRangeWeek    = "week"
	DateRangeMonth   = "month"
	DateRangeQuarter = "quarter"
)

// FeedbackFilters filtros conjuntivos de GET /api/reports/feedbacks. Vacío = sin filtro.
type FeedbackFilters struct {
	MemberUID string `query:"member_uid"`
	Type      string `query:"type" validate:"omitempty,oneof=positive improvement"`
	Status    string `query:"status" validate:"omitempty,oneof=open closed"`
	DateRange string `query:"date_range" validate:"omitempty,oneof=all week month quarter"`
	Search    string `query:"search" validate:"omitempty,max=200"`
}

// DashboardStatsDTO respuesta de GET /api/reports/dashboard.
// Para team_member los conteos son solo de su propio feedback y TeamMembers se omite.
type DashboardStatsDTO struct {
	TotalFeedback int  `json:"total_feedback"`
	Positive      int  `json:"positive"`
	Improvement   int  `json:"improvement"`
	Open          int  `json:"open"`
	Closed        int  `json:"closed"`
	TeamMembers   *int `json:"team_members,omitempty"` // members no admin

	PositiveRate decimal.Decimal `json:"positive_rate"` // % de feedback positivo, 0 si no hay

	RecentActivity []FeedbackResponse `json:"recent_activity"` // 5 más recientes
}

// ReportSummaryDTO totales del reporte filtrado.
type ReportSummaryDTO struct {
	Total       int `json:"total"`
	Positive    int `json:"positive"`
	Improvement int `json:"improvement"`
	Open        int `json:"open"`
}

// FeedbackReportDTO respuesta de GET /api/reports/feedbacks.
type FeedbackReportDTO struct {
	Items   []FeedbackResponse `json:"items"`
	Summary ReportSummaryDTO   `json:"summary"`
}
