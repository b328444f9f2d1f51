package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/analytics"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC)

func fb(id, memberUID string, typ entity.FeedbackType, status entity.FeedbackStatus, age time.Duration) *entity.Feedback {
	return &entity.Feedback{
		ID: id, CompanyID: "c1", MemberUID: memberUID, MemberName: "Name " + memberUID,
		Type: typ, Status: status, Project: "Proyecto " + id, Reviewer: "Rita",
		Description: "desc " + id, CreatedAt: now.Add(-age),
	}
}

func members() []*entity.Member {
	return []*entity.Member{
		{ID: "a", UID: "ua", CompanyID: "c1", Email: "a@c1.co", Role: entity.RoleAdmin},
		{ID: "r", UID: "ur", CompanyID: "c1", Email: "r@c1.co", Role: entity.RoleReviewer},
		{ID: "t", UID: "ut", CompanyID: "c1", Email: "t@c1.co", Role: entity.RoleTeamMember},
		{ID: "x", UID: "ux", CompanyID: "c2", Email: "x@c2.co", Role: entity.RoleTeamMember},
	}
}

// ─── DashboardStats ──────────────────────────────────────────────────────────

func TestDashboardStats_ReviewerVeLaEmpresa(t *testing.T) {
	feedbacks := []*entity.Feedback{
		fb("1", "ut", entity.FeedbackPositive, entity.StatusClosed, time.Hour),
		fb("2", "ut", entity.FeedbackImprovement, entity.StatusOpen, 2*time.Hour),
		fb("3", "ur", entity.FeedbackImprovement, entity.StatusClosed, 3*time.Hour),
	}
	p := entity.Principal{UID: "ur", CompanyID: "c1", Role: entity.RoleReviewer}

	stats, err := analytics.DashboardStats(p, members(), feedbacks)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFeedback)
	assert.Equal(t, 1, stats.Positive)
	assert.Equal(t, 2, stats.Improvement)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 2, stats.Closed)
	require.NotNil(t, stats.TeamMembers)
	assert.Equal(t, 2, *stats.TeamMembers)
	assert.Equal(t, "33.33", stats.PositiveRate.StringFixed(2))
	require.Len(t, stats.RecentActivity, 3)
	assert.Equal(t, "1", stats.RecentActivity[0].ID)
}

func TestDashboardStats_TeamMemberSoloLoPropio(t *testing.T) {
	feedbacks := []*entity.Feedback{
		fb("1", "ut", entity.FeedbackPositive, entity.StatusClosed, time.Hour),
		fb("2", "ur", entity.FeedbackImprovement, entity.StatusOpen, time.Hour),
	}
	p := entity.Principal{UID: "ut", CompanyID: "c1", Role: entity.RoleTeamMember}

	stats, err := analytics.DashboardStats(p, members(), feedbacks)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalFeedback)
	assert.Equal(t, 0, stats.Open)
	assert.Nil(t, stats.TeamMembers)
	assert.Equal(t, "100", stats.PositiveRate.String())
}

func TestDashboardStats_SinFeedbackYActividadRecienteLimitada(t *testing.T) {
	p := entity.Principal{UID: "ua", CompanyID: "c1", Role: entity.RoleAdmin}
	stats, err := analytics.DashboardStats(p, nil, nil)
	require.NoError(t, err)
	assert.True(t, stats.PositiveRate.IsZero())
	assert.Empty(t, stats.RecentActivity)

	var many []*entity.Feedback
	for i := 0; i < 8; i++ {
		many = append(many, fb(string(rune('a'+i)), "ut", entity.FeedbackPositive, entity.StatusClosed, time.Duration(i)*time.Hour))
	}
	stats, err = analytics.DashboardStats(p, nil, many)
	require.NoError(t, err)
	assert.Len(t, stats.RecentActivity, 5)
	assert.Equal(t, "a", stats.RecentActivity[0].ID)
	assert.Equal(t, "a", many[0].ID, "la entrada no se reordena")
}

// ─── FilteredFeedback ────────────────────────────────────────────────────────

func TestFilteredFeedback_PositivoNuncaAbierto(t *testing.T) {
	data := []*entity.Feedback{
		fb("1", "ut", entity.FeedbackPositive, entity.StatusClosed, time.Hour),
		fb("2", "ut", entity.FeedbackImprovement, entity.StatusOpen, time.Hour),
	}
	out, err := analytics.FilteredFeedback(data, dto.FeedbackFilters{Type: "positive", Status: "open"}, now)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestFilteredFeedback_RangosDeFecha(t *testing.T) {
	data := []*entity.Feedback{
		fb("d1", "ut", entity.FeedbackPositive, entity.StatusClosed, 24*time.Hour),
		fb("d7", "ut", entity.FeedbackPositive, entity.StatusClosed, 7*24*time.Hour),
		fb("d20", "ut", entity.FeedbackPositive, entity.StatusClosed, 20*24*time.Hour),
		fb("d80", "ut", entity.FeedbackPositive, entity.StatusClosed, 80*24*time.Hour),
		fb("d200", "ut", entity.FeedbackPositive, entity.StatusClosed, 200*24*time.Hour),
	}
	ids := func(list []*entity.Feedback) []string {
		out := make([]string, 0, len(list))
		for _, f := range list {
			out = append(out, f.ID)
		}
		return out
	}

	cases := []struct {
		dateRange string
		want      []string
	}{
		{"", []string{"d1", "d7", "d20", "d80", "d200"}},
		{"all", []string{"d1", "d7", "d20", "d80", "d200"}},
		{"week", []string{"d1", "d7"}},
		{"month", []string{"d1", "d7", "d20"}},
		{"quarter", []string{"d1", "d7", "d20", "d80"}},
	}
	for _, tc := range cases {
		t.Run("range="+tc.dateRange, func(t *testing.T) {
			out, err := analytics.FilteredFeedback(data, dto.FeedbackFilters{DateRange: tc.dateRange}, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(out))
		})
	}

	_, err := analytics.FilteredFeedback(data, dto.FeedbackFilters{DateRange: "year"}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilteredFeedback_BusquedaSinMayusculas(t *testing.T) {
	a := fb("1", "ut", entity.FeedbackImprovement, entity.StatusOpen, time.Hour)
	a.ActionItems = "Revisar los TESTS de integración"
	b := fb("2", "ur", entity.FeedbackPositive, entity.StatusClosed, time.Hour)
	b.MemberName = "Straße"
	c := fb("3", "ur", entity.FeedbackPositive, entity.StatusClosed, time.Hour)

	out, err := analytics.FilteredFeedback([]*entity.Feedback{a, b, c}, dto.FeedbackFilters{Search: "tests"}, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)

	out, err = analytics.FilteredFeedback([]*entity.Feedback{a, b, c}, dto.FeedbackFilters{Search: "STRASSE"}, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)

	out, err = analytics.FilteredFeedback([]*entity.Feedback{a, b, c}, dto.FeedbackFilters{Search: "rita", MemberUID: "ur"}, now)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestSummarize(t *testing.T) {
	s := analytics.Summarize([]*entity.Feedback{
		fb("1", "ut", entity.FeedbackPositive, entity.StatusClosed, 0),
		fb("2", "ut", entity.FeedbackImprovement, entity.StatusOpen, 0),
		fb("3", "ut", entity.FeedbackImprovement, entity.StatusClosed, 0),
	})
	assert.Equal(t, dto.ReportSummaryDTO{Total: 3, Positive: 1, Improvement: 2, Open: 1}, s)
}

// ─── ReportUseCase ───────────────────────────────────────────────────────────

func TestReportUseCase_TeamMemberNoVeAOtros(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, m := range members() {
		require.NoError(t, store.Members().Create(ctx, m))
	}
	require.NoError(t, store.Feedbacks().Create(ctx, fb("1", "ut", entity.FeedbackPositive, entity.StatusClosed, time.Hour)))
	require.NoError(t, store.Feedbacks().Create(ctx, fb("2", "ur", entity.FeedbackImprovement, entity.StatusOpen, time.Hour)))

	uc := analytics.NewReportUseCase(store.Members(), store.Feedbacks())
	p := entity.Principal{UID: "ut", CompanyID: "c1", Role: entity.RoleTeamMember}

	report, err := uc.Report(ctx, p, dto.FeedbackFilters{MemberUID: "ur"})
	require.NoError(t, err)
	assert.Empty(t, report.Items)

	report, err = uc.Report(ctx, p, dto.FeedbackFilters{})
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "ut", report.Items[0].MemberUID)

	dash, err := uc.Dashboard(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.TotalFeedback)
}
