package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Submit ──────────────────────────────────────────────────────────────────

func TestSubmit_MemberBorradoEntreLecturaYAlta(t *testing.T) {
	c := newCompany(t)
	ctx := context.Background()

	members := &interleavedMembers{MemberRepository: c.store.Members(), afterGet: func() {
		require.NoError(t, c.members.Delete(ctx, c.A, c.T.MemberID))
	}}
	uc := usecase.NewFeedbackUseCase(c.store.Feedbacks(), members, logger.Nop())

	out, err := uc.Submit(ctx, c.R, improvementFor(c.T.MemberID))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, out)

	list, err := c.store.Feedbacks().List(ctx, access.FeedbackFilter{MemberUID: c.T.UID})
	require.NoError(t, err)
	assert.Empty(t, list, "no debe quedar feedback de un member borrado")
}

func TestSubmit_ReviewerMejoraQuedaAbierta(t *testing.T) {
	c := newCompany(t)
	ctx := context.Background()

	fb, err := c.feedback.Submit(ctx, c.R, improvementFor(c.T.MemberID))
	require.NoError(t, err)
	assert.Equal(t, "open", fb.Status)
	assert.Equal(t, c.T.UID, fb.MemberUID)
	assert.Equal(t, "Tomás", fb.MemberName)
	assert.Equal(t, "Rita", fb.Reviewer)
	assert.Equal(t, c.R.UID, fb.ReviewerID)
	assert.Equal(t, "01/01/2030", fb.ImprovementDeadline)

	fb, err = c.feedback.ToggleStatus(ctx, c.R, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", fb.Status)

	fb, err = c.feedback.ToggleStatus(ctx, c.R, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, "open", fb.Status)
}

func TestSubmit_PositivoNaceCerradoYNoCambia(t *testing.T) {
	c := newCompany(t)
	ctx := context.Background()

	fb, err := c.feedback.Submit(ctx, c.A, dto.SubmitFeedbackRequest{
		MemberID: c.R.MemberID, Type: "positive", Description: "gran trabajo", Project: "P",
		ImprovementDeadline: "01/01/2030",
	})
	require.NoError(t, err)
	assert.Equal(t, "closed", fb.Status)
	assert.Empty(t, fb.ImprovementDeadline)

	for i := 0; i < 3; i++ {
		_, err := c.feedback.ToggleStatus(ctx, c.A, fb.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	stored, err := c.store.Feedbacks().GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, stored.Status)
}

func TestSubmit_FeedbackPropioEsInvalido(t *testing.T) {
	c := newCompany(t)
	_, err := c.feedback.Submit(context.Background(), c.R, improvementFor(c.R.MemberID))
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)
}

func TestSubmit_DestinatarioAdminEsInvalido(t *testing.T) {
	c := newCompany(t)
	_, err := c.feedback.Submit(context.Background(), c.R, improvementFor(c.A.MemberID))
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)
}

func TestSubmit_TeamMemberNoPuede(t *testing.T) {
	c := newCompany(t)
	_, err := c.feedback.Submit(context.Background(), c.T, improvementFor(c.R.MemberID))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmit_MemberInexistente(t *testing.T) {
	c := newCompany(t)
	_, err := c.feedback.Submit(context.Background(), c.R, improvementFor("no-existe"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_Validaciones(t *testing.T) {
	c := newCompany(t)
	cases := []struct {
		name string
		in   dto.SubmitFeedbackRequest
	}{
		{"sin descripción", dto.SubmitFeedbackRequest{MemberID: c.T.MemberID, Type: "positive", Project: "P"}},
		{"sin proyecto", dto.SubmitFeedbackRequest{MemberID: c.T.MemberID, Type: "positive", Description: "x"}},
		{"sin tipo", dto.SubmitFeedbackRequest{MemberID: c.T.MemberID, Project: "P", Description: "x"}},
		{"tipo desconocido", dto.SubmitFeedbackRequest{MemberID: c.T.MemberID, Type: "neutral", Project: "P", Description: "x"}},
		{"mejora sin fecha", dto.SubmitFeedbackRequest{MemberID: c.T.MemberID, Type: "improvement", Project: "P", Description: "x"}},
		{"mejora fecha inválida", dto.SubmitFeedbackRequest{
			MemberID: c.T.MemberID, Type: "improvement", Project: "P", Description: "x", ImprovementDeadline: "2030-01-01",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.feedback.Submit(context.Background(), c.R, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ─── List / Toggle ───────────────────────────────────────────────────────────

func TestListFeedback_TeamMemberSoloElPropio(t *testing.T) {
	c := newCompany(t)
	ctx := context.Background()
	_, err := c.feedback.Submit(ctx, c.R, improvementFor(c.T.MemberID))
	require.NoError(t, err)
	_, err = c.feedback.Submit(ctx, c.A, improvementFor(c.R.MemberID))
	require.NoError(t, err)

	own, err := c.feedback.List(ctx, c.T)
	require.NoError(t, err)
	require.Equal(t, 1, own.Total)
	assert.Equal(t, c.T.UID, own.Items[0].MemberUID)

	all, err := c.feedback.List(ctx, c.R)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestToggle_TeamMemberYOtraEmpresa(t *testing.T) {
	c := newCompany(t)
	ctx := context.Background()
	fb, err := c.feedback.Submit(ctx, c.R, improvementFor(c.T.MemberID))
	require.NoError(t, err)

	_, err = c.feedback.ToggleStatus(ctx, c.T, fb.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	outsider := entity.Principal{UID: "u-x", CompanyID: "otra", Role: entity.RoleReviewer}
	_, err = c.feedback.ToggleStatus(ctx, outsider, fb.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.feedback.ToggleStatus(ctx, c.R, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggle_ConcurrenteNoPierdeCambios(t *testing.T) {
	c := newCompany(t)
	ctx := context.Background()
	fb, err := c.feedback.Submit(ctx, c.R, improvementFor(c.T.MemberID))
	require.NoError(t, err)

	const n = 8
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.feedback.ToggleStatus(ctx, c.R, fb.ID); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrConflict)
			}
		}()
	}
	wg.Wait()

	stored, err := c.store.Feedbacks().GetByID(ctx, fb.ID)
	require.NoError(t, err)
	want := entity.StatusOpen
	if ok%2 == 1 {
		want = entity.StatusClosed
	}
	assert.Equal(t, want, stored.Status)
}
