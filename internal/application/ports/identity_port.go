package ports

import (
	"context"
	"time"
)

// MinSecretLength longitud mínima de contraseña aceptada por el proveedor de identidad.
const MinSecretLength = 6

// IdentityProvider es el colaborador que guarda credenciales.
// Devuelve domain.ErrEmailAlreadyExists, domain.ErrWeakCredential o domain.ErrInvalidCredential.
type IdentityProvider interface {
	CreateCredential(ctx context.Context, email, secret string) (uid string, err error)
	// VerifyCredential no distingue email inexistente de contraseña incorrecta.
	VerifyCredential(ctx context.Context, email, secret string) (uid string, err error)
	DeleteCredential(ctx context.Context, uid string) error
	// Isolated abre un contexto secundario para crear credenciales de terceros sin
	// tocar la sesión de quien llama. Se debe cerrar con Close.
	Isolated(ctx context.Context) (CredentialProvisioner, error)
}

// CredentialProvisioner contexto de identidad aislado y desechable.
type CredentialProvisioner interface {
	CreateCredential(ctx context.Context, email, secret string) (uid string, err error)
	DeleteCredential(ctx context.Context, uid string) error
	Close()
}

// SessionStore registra sesiones revocadas (logout) hasta que el token expire.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginLimiter cuenta intentos fallidos de login por clave (email normalizado).
type LoginLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RegisterFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
