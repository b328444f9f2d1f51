package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/application/ports"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
	"github.com/jhoicas/team-feedback/pkg/jwt"
	"github.com/jhoicas/team-feedback/pkg/logger"
	"github.com/jhoicas/team-feedback/pkg/metrics"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta fn con repositorios atados a una misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(companies repository.CompanyRepository, members repository.MemberRepository) error) error
}

// AuthUseCase casos de uso de identidad: registro, login, logout y resolución del principal.
type AuthUseCase struct {
	identity ports.IdentityProvider
	members  repository.MemberRepository
	tx       TxRunner
	sessions ports.SessionStore
	limiter  ports.LoginLimiter
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	identity ports.IdentityProvider,
	members repository.MemberRepository,
	tx TxRunner,
	sessions ports.SessionStore,
	limiter ports.LoginLimiter,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		identity: identity,
		members:  members,
		tx:       tx,
		sessions: sessions,
		limiter:  limiter,
		jwtCfg:   jwtCfg,
		log:      log,
	}
}

// SignUp crea la credencial, luego la empresa y su admin en una transacción, y abre sesión.
// Si la transacción falla se borra la credencial y se devuelve PartialFailureError.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.LoginResponse, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if companyName == "" || name == "" || email == "" {
		return nil, fmt.Errorf("%w: empresa, nombre y email son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < ports.MinSecretLength {
		return nil, domain.ErrWeakCredential
	}

	uid, err := uc.identity.CreateCredential(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      companyName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &entity.Member{
		ID:        uuid.New().String(),
		UID:       uid,
		CompanyID: company.ID,
		Name:      name,
		Email:     email,
		Role:      entity.RoleAdmin,
		Position:  entity.PositionAdministrator,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(companies repository.CompanyRepository, members repository.MemberRepository) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		return members.Create(ctx, admin)
	})
	if err != nil {
		if derr := uc.identity.DeleteCredential(ctx, uid); derr != nil {
			uc.log.Error().Err(derr).Str("uid", uid).Msg("sign_up: no se pudo borrar la credencial huérfana")
		}
		return nil, domain.NewPartialFailure("sign_up", "persist_company", err)
	}

	uc.log.Info().Str("company_id", company.ID).Str("uid", uid).Msg("empresa registrada")
	return uc.issue(toPrincipal(admin))
}

// SignIn valida la credencial y abre sesión.
// Email inexistente y contraseña incorrecta devuelven el mismo ErrInvalidCredential.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredential
	}

	blocked, err := uc.limiter.Blocked(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login limiter: %w", err)
	}
	if blocked {
		metrics.Logins.WithLabelValues("rate_limited").Inc()
		return nil, domain.ErrRateLimited
	}

	uid, err := uc.identity.VerifyCredential(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			metrics.Logins.WithLabelValues("invalid").Inc()
			if rerr := uc.limiter.RegisterFailure(ctx, email); rerr != nil {
				uc.log.Warn().Err(rerr).Msg("no se pudo registrar el intento fallido")
			}
		}
		return nil, err
	}
	if err := uc.limiter.Reset(ctx, email); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo reiniciar el contador de intentos")
	}

	p, err := uc.ResolvePrincipal(ctx, uid)
	if err != nil {
		return nil, err
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	return uc.issue(*p)
}

// SignOut revoca la sesión hasta que el token expire.
func (uc *AuthUseCase) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.ErrUnauthorized
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return uc.sessions.Revoke(ctx, tokenID, ttl)
}

// IsRevoked indica si la sesión fue cerrada.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return uc.sessions.IsRevoked(ctx, tokenID)
}

// ResolvePrincipal obtiene la identidad vigente a partir del uid del proveedor.
// Un uid sin registro Member (borrado) deja de estar autenticado.
func (uc *AuthUseCase) ResolvePrincipal(ctx context.Context, uid string) (*entity.Principal, error) {
	if uid == "" {
		return nil, domain.ErrUnauthorized
	}
	m, err := uc.members.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrUnauthorized
	}
	p := toPrincipal(m)
	return &p, nil
}

func (uc *AuthUseCase) issue(p entity.Principal) (*dto.LoginResponse, error) {
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Subject{
		UserID:    p.MemberID,
		UID:       p.UID,
		CompanyID: p.CompanyID,
		Role:      string(p.Role),
	}, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      ToPrincipalResponse(p),
	}, nil
}

// ToPrincipalResponse mapea el principal a su DTO.
func ToPrincipalResponse(p entity.Principal) dto.PrincipalResponse {
	return dto.PrincipalResponse{
		UID:       p.UID,
		MemberID:  p.MemberID,
		CompanyID: p.CompanyID,
		Role:      string(p.Role),
		Name:      p.Name,
		Email:     p.Email,
	}
}

func toPrincipal(m *entity.Member) entity.Principal {
	return entity.Principal{
		UID:       m.UID,
		MemberID:  m.ID,
		CompanyID: m.CompanyID,
		Role:      m.Role,
		Name:      m.Name,
		Email:     m.Email,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
