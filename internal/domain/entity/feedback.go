package entity

import "time"

// FeedbackType tipo de feedback, inmutable después de crear.
type FeedbackType string

const (
	FeedbackPositive    FeedbackType = "positive"
	FeedbackImprovement FeedbackType = "improvement"
)

// FeedbackStatus estado del ciclo de vida.
type FeedbackStatus string

const (
	StatusOpen   FeedbackStatus = "open"
	StatusClosed FeedbackStatus = "closed"
)

// Feedback nota de desempeño sobre un Member. Solo Status cambia después de crear.
//
// MemberUID y MemberName se copian al escribir para leer sin join; MemberName puede quedar
// desactualizado si el Member se renombra.
type Feedback struct {
	ID                  string
	CompanyID           string
	MemberUID           string
	MemberName          string
	Type                FeedbackType
	Status              FeedbackStatus
	Project             string
	Reviewer            string
	ReviewerID          string
	Description         string
	ActionItems         string
	ImprovementDeadline string // dd/mm/yyyy, solo para improvement
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
