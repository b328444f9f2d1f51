package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

const memberColumns = `id, uid, company_id, name, email, role, position, experience, skills,
	must_change_password, created_at, updated_at`

// MemberRepo implementación del puerto MemberRepository sobre la tabla users.
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador de persistencia para members.
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

// Create persiste un nuevo member.
func (r *MemberRepo) Create(ctx context.Context, m *entity.Member) error {
	const query = `
		INSERT INTO users (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UID, m.CompanyID, m.Name, m.Email, string(m.Role), m.Position, m.Experience, m.Skills,
		m.MustChangePassword, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un member por ID.
func (r *MemberRepo) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	m, err := scanMember(r.q.QueryRow(ctx, `SELECT `+memberColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return m, nil
}

// GetByUID obtiene un member por su uid del proveedor de identidad.
func (r *MemberRepo) GetByUID(ctx context.Context, uid string) (*entity.Member, error) {
	m, err := scanMember(r.q.QueryRow(ctx, `SELECT `+memberColumns+` FROM users WHERE uid = $1`, uid))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by uid: %w", err)
	}
	return m, nil
}

// List traduce el filtro a un predicado de igualdad; más recientes primero.
func (r *MemberRepo) List(ctx context.Context, filter access.MemberFilter) ([]*entity.Member, error) {
	var (
		query string
		arg   string
	)
	switch {
	case filter.UID != "":
		query, arg = `SELECT `+memberColumns+` FROM users WHERE uid = $1 ORDER BY created_at DESC`, filter.UID
	case filter.CompanyID != "":
		query, arg = `SELECT `+memberColumns+` FROM users WHERE company_id = $1 ORDER BY created_at DESC`, filter.CompanyID
	default:
		return nil, nil
	}
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update reescribe los campos mutables (email e uid no cambian) solo si updated_at sigue siendo prev.
// Si otro lo modificó antes devuelve ErrConflict.
func (r *MemberRepo) Update(ctx context.Context, m *entity.Member, prev time.Time) error {
	const query = `
		UPDATE users SET name = $2, role = $3, position = $4, experience = $5, skills = $6,
		       must_change_password = $7, updated_at = $8
		WHERE id = $1 AND updated_at = $9`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Name, string(m.Role), m.Position, m.Experience, m.Skills, m.MustChangePassword, m.UpdatedAt, prev,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, m.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: el member cambió mientras se editaba", domain.ErrConflict)
}

// Delete elimina un member por ID.
func (r *MemberRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el member todavía tiene feedback", domain.ErrConflict)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMember(s pgxScanner) (*entity.Member, error) {
	var (
		m    entity.Member
		role string
	)
	if err := s.Scan(
		&m.ID, &m.UID, &m.CompanyID, &m.Name, &m.Email, &role, &m.Position, &m.Experience, &m.Skills,
		&m.MustChangePassword, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m.Role = entity.Role(role)
	return &m, nil
}
