package dto

import "time"

// CreateMemberRequest entrada para crear un member con acceso.
// Password vacío = se genera una y el member debe cambiarla al entrar.
type CreateMemberRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"omitempty,max=32"`
	Position   string `json:"position" validate:"omitempty,max=200"`
	Experience string `json:"experience" validate:"omitempty,max=200"`
	Skills     string `json:"skills" validate:"omitempty,max=1000"`
	Password   string `json:"password,omitempty"`
}

// CreateMemberResponse credenciales del member creado.
// GeneratedPassword solo viene cuando IsGenerated es true.
type CreateMemberResponse struct {
	ID                string `json:"id"`
	UID               string `json:"uid"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	GeneratedPassword string `json:"generated_password,omitempty"`
	IsGenerated       bool   `json:"is_generated"`
}

// UpdateMemberRequest parche de un member (campos opcionales).
// Email se acepta en el JSON solo para poder rechazarlo: es inmutable.
type UpdateMemberRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email              *string `json:"email"`
	Role               *string `json:"role"`
	Position           *string `json:"position" validate:"omitempty,max=200"`
	Experience         *string `json:"experience" validate:"omitempty,max=200"`
	Skills             *string `json:"skills" validate:"omitempty,max=1000"`
	MustChangePassword *bool   `json:"must_change_password"`
}

// MemberResponse salida de un member.
type MemberResponse struct {
	ID                 string    `json:"id"`
	UID                string    `json:"uid"`
	CompanyID          string    `json:"company_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Position           string    `json:"position"`
	Experience         string    `json:"experience"`
	Skills             string    `json:"skills"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MemberListResponse lista de members visibles.
type MemberListResponse struct {
	Items []MemberResponse `json:"items"`
	Total int              `json:"total"`
}
