package repository

import (
	"context"
	"time"

	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

// FeedbackRepository define el puerto de persistencia para Feedback.
type FeedbackRepository interface {
	// Create devuelve ErrNotFound si fb.MemberUID ya no corresponde a un member.
	Create(ctx context.Context, fb *entity.Feedback) error
	GetByID(ctx context.Context, id string) (*entity.Feedback, error)
	// List devuelve los feedbacks que cumplen el filtro, más recientes primero.
	List(ctx context.Context, filter access.FeedbackFilter) ([]*entity.Feedback, error)
	// UpdateStatus cambia el estado solo si el actual es from; ErrConflict si otro lo cambió antes.
	UpdateStatus(ctx context.Context, id string, from, to entity.FeedbackStatus, at time.Time) error
	// DeleteByMember borra todo el feedback del member en un único lote atómico.
	DeleteByMember(ctx context.Context, companyID, memberUID string) (int64, error)
}
