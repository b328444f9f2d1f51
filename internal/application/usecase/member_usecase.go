package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/ports"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/access"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
	"github.com/jhoicas/team-feedback/pkg/logger"
	"github.com/jhoicas/team-feedback/pkg/metrics"
)

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"

// DefaultGeneratedPasswordLength longitud de la contraseña generada si no se configura otra.
const DefaultGeneratedPasswordLength = 8

// MemberUseCase directorio de members: alta con credencial, edición y baja en cascada.
type MemberUseCase struct {
	members        repository.MemberRepository
	feedbacks      repository.FeedbackRepository
	identity       ports.IdentityProvider
	log            *logger.Logger
	passwordLength int
}

// NewMemberUseCase construye el caso de uso. passwordLength <= 0 usa DefaultGeneratedPasswordLength.
func NewMemberUseCase(
	members repository.MemberRepository,
	feedbacks repository.FeedbackRepository,
	identity ports.IdentityProvider,
	log *logger.Logger,
	passwordLength int,
) *MemberUseCase {
	if passwordLength <= 0 {
		passwordLength = DefaultGeneratedPasswordLength
	}
	return &MemberUseCase{
		members:        members,
		feedbacks:      feedbacks,
		identity:       identity,
		log:            log,
		passwordLength: passwordLength,
	}
}

// List devuelve los members visibles para el principal, más recientes primero.
func (uc *MemberUseCase) List(ctx context.Context, actor entity.Principal) (*dto.MemberListResponse, error) {
	filter, _, err := access.ScopeFor(actor)
	if err != nil {
		return nil, err
	}
	list, err := uc.members.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MemberResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *entityToMemberResponse(m))
	}
	return &dto.MemberListResponse{Items: items, Total: len(items)}, nil
}

// Get obtiene un member visible para el principal; fuera de alcance es ErrNotFound.
func (uc *MemberUseCase) Get(ctx context.Context, actor entity.Principal, id string) (*dto.MemberResponse, error) {
	filter, _, err := access.ScopeFor(actor)
	if err != nil {
		return nil, err
	}
	m, err := uc.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || !filter.Matches(m) {
		return nil, domain.ErrNotFound
	}
	return entityToMemberResponse(m), nil
}

// Create da de alta un member: primero la credencial (en un contexto de identidad aislado),
// después el registro. Si el registro falla se intenta borrar la credencial y se devuelve
// PartialFailureError.
func (uc *MemberUseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreateMemberRequest) (*dto.CreateMemberResponse, error) {
	role := entity.RoleTeamMember
	if r := strings.TrimSpace(in.Role); r != "" {
		role = entity.Role(r)
	}
	// admin nunca es asignable, sin importar quién lo pida.
	if err := access.AssignableRole(role); err != nil {
		return nil, err
	}
	if err := access.CanMutate(actor.Role); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: nombre y email son obligatorios", domain.ErrInvalidInput)
	}

	password := in.Password
	generated := password == ""
	if generated {
		var err error
		if password, err = generatePassword(uc.passwordLength); err != nil {
			return nil, fmt.Errorf("generar contraseña: %w", err)
		}
	}

	prov, err := uc.identity.Isolated(ctx)
	if err != nil {
		return nil, err
	}
	defer prov.Close()

	uid, err := prov.CreateCredential(ctx, email, password)
	if err != nil {
		metrics.MemberOperations.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	position := strings.TrimSpace(in.Position)
	if position == "" {
		position = role.Label()
	}
	now := time.Now().UTC()
	m := &entity.Member{
		ID:                 uuid.New().String(),
		UID:                uid,
		CompanyID:          actor.CompanyID,
		Name:               name,
		Email:              email,
		Role:               role,
		Position:           position,
		Experience:         strings.TrimSpace(in.Experience),
		Skills:             strings.TrimSpace(in.Skills),
		MustChangePassword: generated,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.members.Create(ctx, m); err != nil {
		if derr := prov.DeleteCredential(ctx, uid); derr != nil {
			uc.log.Error().Err(derr).Str("uid", uid).Msg("create_member: no se pudo borrar la credencial huérfana")
		}
		metrics.MemberOperations.WithLabelValues("create", "partial_failure").Inc()
		return nil, domain.NewPartialFailure("create_member", "persist_member", err)
	}

	metrics.MemberOperations.WithLabelValues("create", "ok").Inc()
	uc.log.Info().Str("company_id", m.CompanyID).Str("member_id", m.ID).Str("role", string(role)).Msg("member creado")

	out := &dto.CreateMemberResponse{
		ID:          m.ID,
		UID:         m.UID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        string(m.Role),
		IsGenerated: generated,
	}
	if generated {
		out.GeneratedPassword = password
	}
	return out, nil
}

// Update aplica un parche. Email es inmutable, admin no es asignable y el rol del admin no cambia.
func (uc *MemberUseCase) Update(ctx context.Context, actor entity.Principal, id string, in dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	if err := access.CanMutate(actor.Role); err != nil {
		return nil, err
	}
	if in.Email != nil {
		return nil, fmt.Errorf("%w: el email no se puede modificar", domain.ErrInvalidInput)
	}
	m, err := uc.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || m.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}

	if in.Role != nil {
		role := entity.Role(strings.TrimSpace(*in.Role))
		if err := access.AssignableRole(role); err != nil {
			return nil, err
		}
		if m.Role == entity.RoleAdmin {
			return nil, fmt.Errorf("%w: el rol del admin no se puede cambiar", domain.ErrInvalidRole)
		}
		m.Role = role
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
		}
		m.Name = name
	}
	if in.Position != nil {
		m.Position = strings.TrimSpace(*in.Position)
	}
	if in.Experience != nil {
		m.Experience = strings.TrimSpace(*in.Experience)
	}
	if in.Skills != nil {
		m.Skills = strings.TrimSpace(*in.Skills)
	}
	if in.MustChangePassword != nil {
		m.MustChangePassword = *in.MustChangePassword
	}
	prev := m.UpdatedAt
	m.UpdatedAt = time.Now().UTC()

	if err := uc.members.Update(ctx, m, prev); err != nil {
		return nil, err
	}
	metrics.MemberOperations.WithLabelValues("update", "ok").Inc()
	return entityToMemberResponse(m), nil
}

// Delete borra el feedback del member (lote atómico), luego el registro y al final la credencial.
// Si algo falla después del lote de feedback se devuelve PartialFailureError con el paso.
func (uc *MemberUseCase) Delete(ctx context.Context, actor entity.Principal, id string) error {
	if err := access.CanMutate(actor.Role); err != nil {
		return err
	}
	m, err := uc.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || m.CompanyID != actor.CompanyID {
		return domain.ErrNotFound
	}
	if m.Role == entity.RoleAdmin {
		return fmt.Errorf("%w: el admin de la empresa no se puede borrar", domain.ErrForbidden)
	}
	if m.UID == actor.UID {
		return fmt.Errorf("%w: no puede borrarse a sí mismo", domain.ErrForbidden)
	}

	removed, err := uc.feedbacks.DeleteByMember(ctx, m.CompanyID, m.UID)
	if err != nil {
		metrics.MemberOperations.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("borrar feedback del member: %w", err)
	}
	if err := uc.members.Delete(ctx, m.ID); err != nil {
		metrics.MemberOperations.WithLabelValues("delete", "partial_failure").Inc()
		uc.log.Error().Err(err).Str("member_id", m.ID).Int64("feedbacks_removed", removed).Msg("delete_member: feedback borrado pero el registro sigue")
		return domain.NewPartialFailure("delete_member", "delete_member", err)
	}
	if err := uc.identity.DeleteCredential(ctx, m.UID); err != nil {
		metrics.MemberOperations.WithLabelValues("delete", "partial_failure").Inc()
		uc.log.Error().Err(err).Str("uid", m.UID).Msg("delete_member: registro borrado pero la credencial sigue")
		return domain.NewPartialFailure("delete_member", "delete_credential", err)
	}

	metrics.MemberOperations.WithLabelValues("delete", "ok").Inc()
	uc.log.Info().Str("member_id", m.ID).Int64("feedbacks_removed", removed).Msg("member borrado")
	return nil
}

func generatePassword(n int) (string, error) {
	max := big.NewInt(int64(len(passwordCharset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordCharset[idx.Int64()]
	}
	return string(b), nil
}

func entityToMemberResponse(m *entity.Member) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:                 m.ID,
		UID:                m.UID,
		CompanyID:          m.CompanyID,
		Name:               m.Name,
		Email:              m.Email,
		Role:               string(m.Role),
		Position:           m.Position,
		Experience:         m.Experience,
		Skills:             m.Skills,
		MustChangePassword: m.MustChangePassword,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
