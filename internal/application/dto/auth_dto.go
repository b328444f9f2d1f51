package dto

import "time"

// SignUpRequest registro: crea empresa y su admin.
type SignUpRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

// LoginRequest entrada para login. El formato del email no se valida: un email mal formado
// es simplemente una credencial inválida.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PrincipalResponse identidad resuelta del usuario autenticado.
type PrincipalResponse struct {
	UID       string `json:"uid"`
	MemberID  string `json:"member_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      PrincipalResponse `json:"user"`
}
