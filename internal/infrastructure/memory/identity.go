package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/team-feedback/internal/application/ports"
	"github.com/jhoicas/team-feedback/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	_ ports.IdentityProvider      = (*IdentityProvider)(nil)
	_ ports.CredentialProvisioner = (*provisioner)(nil)
)

var errProvisionerClosed = errors.New("contexto de identidad cerrado")

type credential struct {
	uid  string
	hash []byte
}

// IdentityProvider credenciales en memoria (email -> hash bcrypt).
type IdentityProvider struct {
	mu      sync.Mutex
	byEmail map[string]credential
	cost    int
}

// NewIdentityProvider usa bcrypt.MinCost.
func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{byEmail: make(map[string]credential), cost: bcrypt.MinCost}
}

func (p *IdentityProvider) CreateCredential(_ context.Context, email, secret string) (string, error) {
	if len(secret) < ports.MinSecretLength {
		return "", domain.ErrWeakCredential
	}
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), p.cost)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byEmail[email]; ok {
		return "", domain.ErrEmailAlreadyExists
	}
	uid := uuid.New().String()
	p.byEmail[email] = credential{uid: uid, hash: hash}
	return uid, nil
}

func (p *IdentityProvider) VerifyCredential(_ context.Context, email, secret string) (string, error) {
	p.mu.Lock()
	cred, ok := p.byEmail[strings.ToLower(strings.TrimSpace(email))]
	p.mu.Unlock()
	if !ok {
		return "", domain.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(secret)); err != nil {
		return "", domain.ErrInvalidCredential
	}
	return cred.uid, nil
}

func (p *IdentityProvider) DeleteCredential(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for email, cred := range p.byEmail {
		if cred.uid == uid {
			delete(p.byEmail, email)
			return nil
		}
	}
	return nil
}

// Isolated devuelve un contexto propio que deja de operar tras Close.
func (p *IdentityProvider) Isolated(_ context.Context) (ports.CredentialProvisioner, error) {
	return &provisioner{parent: p}, nil
}

// Has indica si existe credencial para el uid.
func (p *IdentityProvider) Has(uid string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, cred := range p.byEmail {
		if cred.uid == uid {
			return true
		}
	}
	return false
}

type provisioner struct {
	mu     sync.Mutex
	parent *IdentityProvider
	closed bool
}

func (i *provisioner) CreateCredential(ctx context.Context, email, secret string) (string, error) {
	if i.isClosed() {
		return "", errProvisionerClosed
	}
	return i.parent.CreateCredential(ctx, email, secret)
}

func (i *provisioner) DeleteCredential(ctx context.Context, uid string) error {
	if i.isClosed() {
		return errProvisionerClosed
	}
	return i.parent.DeleteCredential(ctx, uid)
}

func (i *provisioner) Close() {
	i.mu.Lock()
	i.closed = true
	i.mu.Unlock()
}

func (i *provisioner) isClosed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.closed
}
