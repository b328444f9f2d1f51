package dto

import "time"

// SubmitFeedbackRequest entrada para registrar feedback.
// ImprovementDeadline (dd/mm/yyyy) es obligatoria para type=improvement.
type SubmitFeedbackRequest struct {
	MemberID            string `json:"member_id" validate:"required"`
	Type                string `json:"type" validate:"required,oneof=positive improvement"`
	Project             string `json:"project" validate:"required,max=200"`
	Description         string `json:"description" validate:"required"`
	ActionItems         string `json:"action_items"`
	ImprovementDeadline string `json:"improvement_deadline"`
}

// FeedbackResponse salida de un feedback.
type FeedbackResponse struct {
	ID                  string    `json:"id"`
	CompanyID           string    `json:"company_id"`
	MemberUID           string    `json:"member_uid"`
	MemberName          string    `json:"member_name"`
	Type                string    `json:"type"`
	Status              string    `json:"status"`
	Project             string    `json:"project"`
	Reviewer            string    `json:"reviewer"`
	ReviewerID          string    `json:"reviewer_id"`
	Description         string    `json:"description"`
	ActionItems         string    `json:"action_items"`
	ImprovementDeadline string    `json:"improvement_deadline,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// FeedbackListResponse lista de feedbacks visibles.
type FeedbackListResponse struct {
	Items []FeedbackResponse `json:"items"`
	Total int                `json:"total"`
}
