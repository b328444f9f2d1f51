// Package feedback contiene la máquina de estados de un Feedback.
//
//	positive:     closed (sin transiciones)
//	improvement:  open ⇄ closed
package feedback

import (
	"fmt"

	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

// InitialStatus estado con el que nace un feedback según su tipo.
func InitialStatus(t entity.FeedbackType) (entity.FeedbackStatus, error) {
	switch t {
	case entity.FeedbackPositive:
		return entity.StatusClosed, nil
	case entity.FeedbackImprovement:
		return entity.StatusOpen, nil
	default:
		return "", fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, t)
	}
}

// Toggle devuelve el siguiente estado. Es una involución: Toggle(Toggle(s)) == s.
func Toggle(t entity.FeedbackType, current entity.FeedbackStatus) (entity.FeedbackStatus, error) {
	if t != entity.FeedbackImprovement {
		return "", fmt.Errorf("%w: %s no tiene transiciones", domain.ErrInvalidTransition, t)
	}
	switch current {
	case entity.StatusOpen:
		return entity.StatusClosed, nil
	case entity.StatusClosed:
		return entity.StatusOpen, nil
	default:
		return "", fmt.Errorf("%w: estado %q", domain.ErrInvalidTransition, current)
	}
}
