package entity

import "time"

// PositionAdministrator posición asignada al admin creado en el registro.
const PositionAdministrator = "Administrator"

// Member representa una persona de la empresa (colección "users").
// UID es el identificador estable del proveedor de identidad; ID es el del registro.
type Member struct {
	ID                 string
	UID                string
	CompanyID          string
	Name               string
	Email              string // inmutable después de crear
	Role               Role
	Position           string
	Experience         string
	Skills             string
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
