package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Step paso fallido de una operación incompleta (solo PARTIAL_FAILURE).
	Step string `json:"step,omitempty"`
}
