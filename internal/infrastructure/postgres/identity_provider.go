package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/team-feedback/internal/application/ports"
	"github.com/jhoicas/team-feedback/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	_ ports.IdentityProvider      = (*IdentityProvider)(nil)
	_ ports.CredentialProvisioner = (*isolatedProvisioner)(nil)
)

var errProvisionerClosed = errors.New("contexto de identidad cerrado")

// IdentityProvider guarda credenciales (email + hash bcrypt) en la tabla credentials.
type IdentityProvider struct {
	pool *pgxpool.Pool
	cost int
}

// NewIdentityProvider construye el proveedor con bcrypt.DefaultCost.
func NewIdentityProvider(pool *pgxpool.Pool) *IdentityProvider {
	return &IdentityProvider{pool: pool, cost: bcrypt.DefaultCost}
}

func (p *IdentityProvider) CreateCredential(ctx context.Context, email, secret string) (string, error) {
	return createCredential(ctx, p.pool, p.cost, email, secret)
}

// VerifyCredential no distingue email inexistente de contraseña incorrecta.
func (p *IdentityProvider) VerifyCredential(ctx context.Context, email, secret string) (string, error) {
	var uid, hash string
	err := p.pool.QueryRow(ctx,
		`SELECT uid, password_hash FROM credentials WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&uid, &hash)
	if err != nil {
		if isNoRows(err) {
			return "", domain.ErrInvalidCredential
		}
		return "", fmt.Errorf("get credential: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return "", domain.ErrInvalidCredential
	}
	return uid, nil
}

// DeleteCredential es idempotente: borrar un uid inexistente no es error.
func (p *IdentityProvider) DeleteCredential(ctx context.Context, uid string) error {
	return deleteCredential(ctx, p.pool, uid)
}

// Isolated devuelve un provisionador que escribe fuera de la transacción de quien llama.
// No retiene conexión: cada sentencia toma una del pool y la devuelve al terminar.
func (p *IdentityProvider) Isolated(_ context.Context) (ports.CredentialProvisioner, error) {
	return &isolatedProvisioner{pool: p.pool, cost: p.cost}, nil
}

type isolatedProvisioner struct {
	pool   *pgxpool.Pool
	cost   int
	closed bool
}

func (i *isolatedProvisioner) CreateCredential(ctx context.Context, email, secret string) (string, error) {
	if i.closed {
		return "", errProvisionerClosed
	}
	return createCredential(ctx, i.pool, i.cost, email, secret)
}

func (i *isolatedProvisioner) DeleteCredential(ctx context.Context, uid string) error {
	if i.closed {
		return errProvisionerClosed
	}
	return deleteCredential(ctx, i.pool, uid)
}

func (i *isolatedProvisioner) Close() {
	i.closed = true
}

func createCredential(ctx context.Context, q Querier, cost int, email, secret string) (string, error) {
	if len(secret) < ports.MinSecretLength {
		return "", domain.ErrWeakCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	uid := uuid.New().String()
	_, err = q.Exec(ctx,
		`INSERT INTO credentials (uid, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		uid, strings.ToLower(strings.TrimSpace(email)), string(hash), time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrEmailAlreadyExists
		}
		return "", fmt.Errorf("insert credential: %w", err)
	}
	return uid, nil
}

func deleteCredential(ctx context.Context, q Querier, uid string) error {
	if _, err := q.Exec(ctx, `DELETE FROM credentials WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
