package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/auth"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.MemberRepository   = (*MemberRepo)(nil)
	_ repository.FeedbackRepository = (*FeedbackRepo)(nil)
	_ auth.TxRunner                 = (*TxRunner)(nil)
)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	store *Store
	tx    *state
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.companies[c.ID]; ok {
			return fmt.Errorf("%w: empresa %s ya existe", domain.ErrConflict, c.ID)
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.store.view(r.tx, func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// MemberRepo members (colección users) en memoria.
type MemberRepo struct {
	store *Store
	tx    *state
}

func (r *MemberRepo) Create(_ context.Context, m *entity.Member) error {
	return r.store.view(r.tx, func(st *state) error {
		for _, row := range st.members {
			if row.m.Email == m.Email {
				return domain.ErrEmailAlreadyExists
			}
			if row.m.UID == m.UID || row.m.ID == m.ID {
				return fmt.Errorf("%w: member duplicado", domain.ErrConflict)
			}
		}
		st.members[m.ID] = memberRow{m: *m, seq: st.next()}
		return nil
	})
}

func (r *MemberRepo) GetByID(_ context.Context, id string) (*entity.Member, error) {
	var out *entity.Member
	err := r.store.view(r.tx, func(st *state) error {
		if row, ok := st.members[id]; ok {
			m := row.m
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MemberRepo) GetByUID(_ context.Context, uid string) (*entity.Member, error) {
	var out *entity.Member
	err := r.store.view(r.tx, func(st *state) error {
		for _, row := range st.members {
			if row.m.UID == uid {
				m := row.m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MemberRepo) List(_ context.Context, filter access.MemberFilter) ([]*entity.Member, error) {
	var rows []memberRow
	err := r.store.view(r.tx, func(st *state) error {
		for _, row := range st.members {
			m := row.m
			if filter.Matches(&m) {
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	newestFirst(rows, func(r memberRow) time.Time { return r.m.CreatedAt }, func(r memberRow) int64 { return r.seq })
	out := make([]*entity.Member, 0, len(rows))
	for _, row := range rows {
		m := row.m
		out = append(out, &m)
	}
	return out, nil
}

func (r *MemberRepo) Update(_ context.Context, m *entity.Member, prev time.Time) error {
	return r.store.view(r.tx, func(st *state) error {
		row, ok := st.members[m.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if !row.m.UpdatedAt.Equal(prev) {
			return fmt.Errorf("%w: el member cambió mientras se editaba", domain.ErrConflict)
		}
		row.m.Name = m.Name
		row.m.Role = m.Role
		row.m.Position = m.Position
		row.m.Experience = m.Experience
		row.m.Skills = m.Skills
		row.m.MustChangePassword = m.MustChangePassword
		row.m.UpdatedAt = m.UpdatedAt
		st.members[m.ID] = row
		return nil
	})
}

func (r *MemberRepo) Delete(_ context.Context, id string) error {
	return r.store.view(r.tx, func(st *state) error {
		row, ok := st.members[id]
		if !ok {
			return domain.ErrNotFound
		}
		for _, fb := range st.feedbacks {
			if fb.fb.MemberUID == row.m.UID {
				return fmt.Errorf("%w: el member todavía tiene feedback", domain.ErrConflict)
			}
		}
		delete(st.members, id)
		return nil
	})
}

// FeedbackRepo feedbacks en memoria.
type FeedbackRepo struct {
	store *Store
}

func (r *FeedbackRepo) Create(_ context.Context, fb *entity.Feedback) error {
	return r.store.view(nil, func(st *state) error {
		if _, ok := st.feedbacks[fb.ID]; ok {
			return fmt.Errorf("%w: feedback %s ya existe", domain.ErrConflict, fb.ID)
		}
		if !st.hasMember(fb.MemberUID) {
			return fmt.Errorf("%w: el member %s ya no existe", domain.ErrNotFound, fb.MemberUID)
		}
		st.feedbacks[fb.ID] = feedbackRow{fb: *fb, seq: st.next()}
		return nil
	})
}

func (r *FeedbackRepo) GetByID(_ context.Context, id string) (*entity.Feedback, error) {
	var out *entity.Feedback
	err := r.store.view(nil, func(st *state) error {
		if row, ok := st.feedbacks[id]; ok {
			fb := row.fb
			out = &fb
		}
		return nil
	})
	return out, err
}

func (r *FeedbackRepo) List(_ context.Context, filter access.FeedbackFilter) ([]*entity.Feedback, error) {
	var rows []feedbackRow
	err := r.store.view(nil, func(st *state) error {
		for _, row := range st.feedbacks {
			fb := row.fb
			if filter.Matches(&fb) {
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	newestFirst(rows, func(r feedbackRow) time.Time { return r.fb.CreatedAt }, func(r feedbackRow) int64 { return r.seq })
	out := make([]*entity.Feedback, 0, len(rows))
	for _, row := range rows {
		fb := row.fb
		out = append(out, &fb)
	}
	return out, nil
}

func (r *FeedbackRepo) UpdateStatus(_ context.Context, id string, from, to entity.FeedbackStatus, at time.Time) error {
	return r.store.view(nil, func(st *state) error {
		row, ok := st.feedbacks[id]
		if !ok {
			return domain.ErrNotFound
		}
		if row.fb.Status != from {
			return fmt.Errorf("%w: el estado ya no es %s", domain.ErrConflict, from)
		}
		row.fb.Status = to
		row.fb.UpdatedAt = at
		st.feedbacks[id] = row
		return nil
	})
}

// DeleteByMember borra bajo un solo lock: nadie observa un borrado a medias.
func (r *FeedbackRepo) DeleteByMember(_ context.Context, companyID, memberUID string) (int64, error) {
	var n int64
	err := r.store.view(nil, func(st *state) error {
		for id, row := range st.feedbacks {
			if row.fb.CompanyID == companyID && row.fb.MemberUID == memberUID {
				delete(st.feedbacks, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

// TxRunner aplica todas las escrituras de fn o ninguna.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	members repository.MemberRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&CompanyRepo{store: s, tx: work}, &MemberRepo{store: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}
