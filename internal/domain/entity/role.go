package entity

import "fmt"

// Role es el conjunto cerrado de roles de un Member.
type Role string

// Roles válidos para Member.
const (
	RoleAdmin      Role = "admin"
	RoleReviewer   Role = "reviewer"
	RoleTeamMember Role = "team_member"
)

// ParseRole convierte un string en Role; cualquier otro valor es error.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleReviewer, RoleTeamMember:
		return Role(s), nil
	default:
		return "", fmt.Errorf("rol desconocido %q", s)
	}
}

// Label nombre legible del rol (se usa como posición por defecto).
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleReviewer:
		return "Reviewer"
	case RoleTeamMember:
		return "Team Member"
	default:
		return string(r)
	}
}

func (r Role) String() string { return string(r) }
