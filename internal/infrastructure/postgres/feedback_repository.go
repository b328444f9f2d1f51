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

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

const feedbackColumns = `id, company_id, member_uid, member_name, type, status, project, reviewer, reviewer_id,
	description, action_items, improvement_deadline, created_at, updated_at`

// FeedbackRepo implementa FeedbackRepository sobre PostgreSQL.
type FeedbackRepo struct {
	q Querier
}

// NewFeedbackRepository construye el repositorio.
func NewFeedbackRepository(q Querier) *FeedbackRepo {
	return &FeedbackRepo{q: q}
}

// Create inserta el feedback; si el member ya no existe devuelve ErrNotFound.
func (r *FeedbackRepo) Create(ctx context.Context, fb *entity.Feedback) error {
	const query = `
		INSERT INTO feedbacks (` + feedbackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		fb.ID, fb.CompanyID, fb.MemberUID, fb.MemberName, string(fb.Type), string(fb.Status),
		fb.Project, fb.Reviewer, fb.ReviewerID, fb.Description, fb.ActionItems, fb.ImprovementDeadline,
		fb.CreatedAt, fb.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el member %s ya no existe", domain.ErrNotFound, fb.MemberUID)
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	fb, err := scanFeedback(r.q.QueryRow(ctx, `SELECT `+feedbackColumns+` FROM feedbacks WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback by id: %w", err)
	}
	return fb, nil
}

// List traduce el filtro a un predicado de igualdad; más recientes primero.
func (r *FeedbackRepo) List(ctx context.Context, filter access.FeedbackFilter) ([]*entity.Feedback, error) {
	var (
		query string
		arg   string
	)
	switch {
	case filter.MemberUID != "":
		query, arg = `SELECT `+feedbackColumns+` FROM feedbacks WHERE member_uid = $1 ORDER BY created_at DESC`, filter.MemberUID
	case filter.CompanyID != "":
		query, arg = `SELECT `+feedbackColumns+` FROM feedbacks WHERE company_id = $1 ORDER BY created_at DESC`, filter.CompanyID
	default:
		return nil, nil
	}
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	defer rows.Close()

	var list []*entity.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		list = append(list, fb)
	}
	return list, rows.Err()
}

// UpdateStatus es un compare-and-set sobre status: si otro lo cambió antes devuelve ErrConflict.
func (r *FeedbackRepo) UpdateStatus(ctx context.Context, id string, from, to entity.FeedbackStatus, at time.Time) error {
	const query = `UPDATE feedbacks SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(ctx, query, id, string(from), string(to), at)
	if err != nil {
		return fmt.Errorf("update feedback status: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM feedbacks WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check feedback: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: el estado ya no es %s", domain.ErrConflict, from)
}

// DeleteByMember borra el feedback del member con una única sentencia (todo o nada).
func (r *FeedbackRepo) DeleteByMember(ctx context.Context, companyID, memberUID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM feedbacks WHERE company_id = $1 AND member_uid = $2`, companyID, memberUID)
	if err != nil {
		return 0, fmt.Errorf("delete feedbacks by member: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanFeedback(s pgxScanner) (*entity.Feedback, error) {
	var (
		fb          entity.Feedback
		typ, status string
	)
	if err := s.Scan(
		&fb.ID, &fb.CompanyID, &fb.MemberUID, &fb.MemberName, &typ, &status, &fb.Project, &fb.Reviewer,
		&fb.ReviewerID, &fb.Description, &fb.ActionItems, &fb.ImprovementDeadline, &fb.CreatedAt, &fb.UpdatedAt,
	); err != nil {
		return nil, err
	}
	fb.Type = entity.FeedbackType(typ)
	fb.Status = entity.FeedbackStatus(status)
	return &fb, nil
}
