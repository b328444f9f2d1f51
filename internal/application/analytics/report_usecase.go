package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// Dataset members y feedbacks visibles para un principal, leídos juntos.
type Dataset struct {
	Members   []*entity.Member
	Feedbacks []*entity.Feedback
}

// ReportUseCase arma dashboard y reportes a partir de los repositorios.
type ReportUseCase struct {
	members   repository.MemberRepository
	feedbacks repository.FeedbackRepository
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(members repository.MemberRepository, feedbacks repository.FeedbackRepository) *ReportUseCase {
	return &ReportUseCase{members: members, feedbacks: feedbacks, now: time.Now}
}

// Load lee en paralelo las dos colecciones con los filtros de alcance del principal.
func (uc *ReportUseCase) Load(ctx context.Context, p entity.Principal) (*Dataset, error) {
	memberScope, feedbackScope, err := access.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := uc.members.List(gctx, memberScope)
		ds.Members = list
		return err
	})
	g.Go(func() error {
		list, err := uc.feedbacks.List(gctx, feedbackScope)
		ds.Feedbacks = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Dashboard estadísticas del principal.
func (uc *ReportUseCase) Dashboard(ctx context.Context, p entity.Principal) (*dto.DashboardStatsDTO, error) {
	ds, err := uc.Load(ctx, p)
	if err != nil {
		return nil, err
	}
	stats, err := DashboardStats(p, ds.Members, ds.Feedbacks)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Filtered feedback visible para p que cumple los filtros, junto con el dataset leído.
func (uc *ReportUseCase) Filtered(ctx context.Context, p entity.Principal, f dto.FeedbackFilters) ([]*entity.Feedback, *Dataset, error) {
	ds, err := uc.Load(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	list, err := FilteredFeedback(ds.Feedbacks, f, uc.now())
	if err != nil {
		return nil, nil, err
	}
	return list, ds, nil
}

// Report respuesta de GET /api/reports/feedbacks.
func (uc *ReportUseCase) Report(ctx context.Context, p entity.Principal, f dto.FeedbackFilters) (*dto.FeedbackReportDTO, error) {
	list, _, err := uc.Filtered(ctx, p, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FeedbackResponse, 0, len(list))
	for _, fb := range list {
		items = append(items, usecase.FeedbackToResponse(fb))
	}
	return &dto.FeedbackReportDTO{Items: items, Summary: Summarize(list)}, nil
}
