// Package access define qué registros puede ver y modificar cada principal.
// Todo es puro: no hay I/O ni estado.
package access

import (
	"fmt"

	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

// MemberFilter predicado de igualdad sobre la colección de members.
// Exactamente uno de CompanyID o UID está definido.
type MemberFilter struct {
	CompanyID string
	UID       string
}

// Matches indica si el member cae dentro del filtro.
func (f MemberFilter) Matches(m *entity.Member) bool {
	if m == nil {
		return false
	}
	if f.UID != "" {
		return m.UID == f.UID
	}
	return f.CompanyID != "" && m.CompanyID == f.CompanyID
}

// FeedbackFilter predicado de igualdad sobre la colección de feedbacks.
type FeedbackFilter struct {
	CompanyID string
	MemberUID string
}

// Matches indica si el feedback cae dentro del filtro.
func (f FeedbackFilter) Matches(fb *entity.Feedback) bool {
	if fb == nil {
		return false
	}
	if f.MemberUID != "" {
		return fb.MemberUID == f.MemberUID
	}
	return f.CompanyID != "" && fb.CompanyID == f.CompanyID
}

// ScopeFor devuelve los filtros de visibilidad del principal.
// team_member solo se ve a sí mismo y su propio feedback; admin y reviewer ven la empresa.
func ScopeFor(p entity.Principal) (MemberFilter, FeedbackFilter, error) {
	switch p.Role {
	case entity.RoleAdmin, entity.RoleReviewer:
		return MemberFilter{CompanyID: p.CompanyID}, FeedbackFilter{CompanyID: p.CompanyID}, nil
	case entity.RoleTeamMember:
		return MemberFilter{UID: p.UID}, FeedbackFilter{MemberUID: p.UID}, nil
	default:
		return MemberFilter{}, FeedbackFilter{}, fmt.Errorf("%w: rol %q", domain.ErrForbidden, p.Role)
	}
}

// CanMutate falla con ErrForbidden si el rol es de solo lectura.
func CanMutate(role entity.Role) error {
	switch role {
	case entity.RoleAdmin, entity.RoleReviewer:
		return nil
	case entity.RoleTeamMember:
		return fmt.Errorf("%w: %s es de solo lectura", domain.ErrForbidden, role)
	default:
		return fmt.Errorf("%w: rol %q", domain.ErrForbidden, role)
	}
}

// AssignableRole valida el rol que se puede asignar después de crear la empresa.
// admin nunca es asignable.
func AssignableRole(role entity.Role) error {
	switch role {
	case entity.RoleReviewer, entity.RoleTeamMember:
		return nil
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
}

// CheckAuthor valida que actor pueda escribir feedback sobre subject.
func CheckAuthor(actor entity.Principal, subject *entity.Member) error {
	if err := CanMutate(actor.Role); err != nil {
		return err
	}
	if subject == nil {
		return fmt.Errorf("%w: sin destinatario", domain.ErrInvalidSubject)
	}
	switch subject.Role {
	case entity.RoleReviewer, entity.RoleTeamMember:
	default:
		return fmt.Errorf("%w: no se puede dar feedback a %s", domain.ErrInvalidSubject, subject.Role)
	}
	if subject.CompanyID != actor.CompanyID {
		return fmt.Errorf("%w: pertenece a otra empresa", domain.ErrInvalidSubject)
	}
	if subject.UID == actor.UID || (actor.MemberID != "" && subject.ID == actor.MemberID) {
		return fmt.Errorf("%w: no se permite feedback propio", domain.ErrInvalidSubject)
	}
	return nil
}

// CheckToggle valida que actor pueda alternar el estado del feedback.
func CheckToggle(actor entity.Principal, fb *entity.Feedback) error {
	if err := CanMutate(actor.Role); err != nil {
		return err
	}
	if fb.Type != entity.FeedbackImprovement {
		return fmt.Errorf("%w: solo feedback de mejora cambia de estado", domain.ErrInvalidTransition)
	}
	return nil
}
