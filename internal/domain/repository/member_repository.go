package repository

import (
	"context"
	"time"

	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

// MemberRepository define el puerto de persistencia para Member (colección users).
// GetByID y GetByUID devuelven (nil, nil) si no existe.
type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByID(ctx context.Context, id string) (*entity.Member, error)
	GetByUID(ctx context.Context, uid string) (*entity.Member, error)
	// List devuelve los members que cumplen el filtro, más recientes primero.
	List(ctx context.Context, filter access.MemberFilter) ([]*entity.Member, error)
	// Update reescribe los campos mutables si UpdatedAt sigue siendo prev.
	// ErrNotFound si no existe; ErrConflict si otro lo modificó antes.
	Update(ctx context.Context, member *entity.Member, prev time.Time) error
	// Delete elimina por ID; ErrNotFound si no existe; ErrConflict si aún tiene feedback.
	Delete(ctx context.Context, id string) error
}
