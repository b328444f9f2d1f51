package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/feedback"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
	"github.com/jhoicas/team-feedback/pkg/logger"
	"github.com/jhoicas/team-feedback/pkg/metrics"
)

// DeadlineLayout formato de ImprovementDeadline (dd/mm/yyyy).
const DeadlineLayout = "02/01/2006"

// FeedbackUseCase registro de feedback y su ciclo open/closed.
// El contenido no se edita después de crear; solo cambia el estado.
type FeedbackUseCase struct {
	feedbacks repository.FeedbackRepository
	members   repository.MemberRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewFeedbackUseCase construye el caso de uso.
func NewFeedbackUseCase(feedbacks repository.FeedbackRepository, members repository.MemberRepository, log *logger.Logger) *FeedbackUseCase {
	return &FeedbackUseCase{
		feedbacks: feedbacks,
		members:   members,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List devuelve el feedback visible para el principal, más reciente primero.
func (uc *FeedbackUseCase) List(ctx context.Context, actor entity.Principal) (*dto.FeedbackListResponse, error) {
	_, filter, err := access.ScopeFor(actor)
	if err != nil {
		return nil, err
	}
	list, err := uc.feedbacks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FeedbackResponse, 0, len(list))
	for _, fb := range list {
		items = append(items, FeedbackToResponse(fb))
	}
	return &dto.FeedbackListResponse{Items: items, Total: len(items)}, nil
}

// Submit registra feedback sobre un member. Copia uid y nombre del destinatario y firma con el principal.
func (uc *FeedbackUseCase) Submit(ctx context.Context, actor entity.Principal, in dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	if err := access.CanMutate(actor.Role); err != nil {
		return nil, err
	}

	typ := entity.FeedbackType(strings.TrimSpace(in.Type))
	project := strings.TrimSpace(in.Project)
	description := strings.TrimSpace(in.Description)
	if typ == "" || project == "" || description == "" {
		return nil, fmt.Errorf("%w: tipo, proyecto y descripción son obligatorios", domain.ErrInvalidInput)
	}
	status, err := feedback.InitialStatus(typ)
	if err != nil {
		return nil, err
	}
	deadline := ""
	if typ == entity.FeedbackImprovement {
		deadline = strings.TrimSpace(in.ImprovementDeadline)
		if deadline == "" {
			return nil, fmt.Errorf("%w: la fecha límite de mejora es obligatoria", domain.ErrInvalidInput)
		}
		if _, err := time.Parse(DeadlineLayout, deadline); err != nil {
			return nil, fmt.Errorf("%w: fecha límite %q, se espera dd/mm/yyyy", domain.ErrInvalidInput, deadline)
		}
	}

	subject, err := uc.members.GetByID(ctx, strings.TrimSpace(in.MemberID))
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.CheckAuthor(actor, subject); err != nil {
		return nil, err
	}

	now := uc.now()
	fb := &entity.Feedback{
		ID:                  uuid.New().String(),
		CompanyID:           actor.CompanyID,
		MemberUID:           subject.UID,
		MemberName:          subject.Name,
		Type:                typ,
		Status:              status,
		Project:             project,
		Reviewer:            actor.Name,
		ReviewerID:          actor.UID,
		Description:         description,
		ActionItems:         strings.TrimSpace(in.ActionItems),
		ImprovementDeadline: deadline,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.feedbacks.Create(ctx, fb); err != nil {
		return nil, err
	}

	metrics.FeedbackSubmitted.WithLabelValues(string(typ)).Inc()
	uc.log.Info().Str("feedback_id", fb.ID).Str("member_uid", fb.MemberUID).Str("type", string(typ)).Msg("feedback registrado")
	out := FeedbackToResponse(fb)
	return &out, nil
}

// ToggleStatus alterna open/closed de un feedback de mejora.
// Si otro lo cambió entre la lectura y la escritura devuelve ErrConflict.
func (uc *FeedbackUseCase) ToggleStatus(ctx context.Context, actor entity.Principal, id string) (*dto.FeedbackResponse, error) {
	if err := access.CanMutate(actor.Role); err != nil {
		return nil, err
	}
	fb, err := uc.feedbacks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb == nil || fb.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if err := access.CheckToggle(actor, fb); err != nil {
		return nil, err
	}
	next, err := feedback.Toggle(fb.Type, fb.Status)
	if err != nil {
		return nil, err
	}
	at := uc.now()
	if err := uc.feedbacks.UpdateStatus(ctx, fb.ID, fb.Status, next, at); err != nil {
		return nil, err
	}
	fb.Status = next
	fb.UpdatedAt = at

	metrics.FeedbackToggles.WithLabelValues(string(next)).Inc()
	out := FeedbackToResponse(fb)
	return &out, nil
}

// FeedbackToResponse mapea la entidad a su DTO.
func FeedbackToResponse(fb *entity.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:                  fb.ID,
		CompanyID:           fb.CompanyID,
		MemberUID:           fb.MemberUID,
		MemberName:          fb.MemberName,
		Type:                string(fb.Type),
		Status:              string(fb.Status),
		Project:             fb.Project,
		Reviewer:            fb.Reviewer,
		ReviewerID:          fb.ReviewerID,
		Description:         fb.Description,
		ActionItems:         fb.ActionItems,
		ImprovementDeadline: fb.ImprovementDeadline,
		CreatedAt:           fb.CreatedAt,
		UpdatedAt:           fb.UpdatedAt,
	}
}
