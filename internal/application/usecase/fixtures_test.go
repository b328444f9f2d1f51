package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
	"github.com/jhoicas/team-feedback/internal/infrastructure/memory"
	"github.com/jhoicas/team-feedback/pkg/logger"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store caído")

// company empresa C con A(admin), R(reviewer) y T(team_member).
type company struct {
	store    *memory.Store
	identity *memory.IdentityProvider
	members  *usecase.MemberUseCase
	feedback *usecase.FeedbackUseCase

	A, R, T entity.Principal
}

func newCompany(t *testing.T) *company {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	identity := memory.NewIdentityProvider()
	c := &company{
		store:    store,
		identity: identity,
		members:  usecase.NewMemberUseCase(store.Members(), store.Feedbacks(), identity, logger.Nop(), 0),
		feedback: usecase.NewFeedbackUseCase(store.Feedbacks(), store.Members(), logger.Nop()),
	}

	uid, err := identity.CreateCredential(ctx, "admin@acme.co", "secreto")
	require.NoError(t, err)
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "company-c", Name: "Acme"}))
	admin := &entity.Member{
		ID: "member-a", UID: uid, CompanyID: "company-c", Name: "Ana", Email: "admin@acme.co",
		Role: entity.RoleAdmin, Position: entity.PositionAdministrator, CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, store.Members().Create(ctx, admin))
	c.A = principalOf(admin)

	c.R = c.add(t, "Rita", "rita@acme.co", entity.RoleReviewer)
	c.T = c.add(t, "Tomás", "tomas@acme.co", entity.RoleTeamMember)
	return c
}

func (c *company) add(t *testing.T, name, email string, role entity.Role) entity.Principal {
	t.Helper()
	out, err := c.members.Create(context.Background(), c.A, dto.CreateMemberRequest{
		Name: name, Email: email, Role: string(role), Password: "secreto",
	})
	require.NoError(t, err)
	m, err := c.store.Members().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	return principalOf(m)
}

func principalOf(m *entity.Member) entity.Principal {
	return entity.Principal{UID: m.UID, MemberID: m.ID, CompanyID: m.CompanyID, Role: m.Role, Name: m.Name, Email: m.Email}
}

func improvementFor(memberID string) dto.SubmitFeedbackRequest {
	return dto.SubmitFeedbackRequest{
		MemberID: memberID, Type: "improvement", Description: "x", Project: "P", ImprovementDeadline: "01/01/2030",
	}
}

// ─── decoradores que fallan ─────────────────────────────────────────────────

type failingMembers struct {
	repository.MemberRepository
	failCreate, failDelete bool
}

func (f failingMembers) Create(ctx context.Context, m *entity.Member) error {
	if f.failCreate {
		return errStore
	}
	return f.MemberRepository.Create(ctx, m)
}

func (f failingMembers) Delete(ctx context.Context, id string) error {
	if f.failDelete {
		return errStore
	}
	return f.MemberRepository.Delete(ctx, id)
}

type failingFeedbacks struct {
	repository.FeedbackRepository
}

func (failingFeedbacks) DeleteByMember(context.Context, string, string) (int64, error) {
	return 0, errStore
}

type failingCredentialDelete struct {
	*memory.IdentityProvider
}

func (failingCredentialDelete) DeleteCredential(context.Context, string) error {
	return errStore
}

// interleavedMembers ejecuta afterGet una sola vez, justo después de la primera lectura por ID,
// para simular otra petición que se cuela entre la lectura y la escritura.
type interleavedMembers struct {
	repository.MemberRepository
	afterGet func()
	done     bool
}

func (r *interleavedMembers) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	m, err := r.MemberRepository.GetByID(ctx, id)
	if !r.done && r.afterGet != nil {
		r.done = true
		r.afterGet()
	}
	return m, err
}
