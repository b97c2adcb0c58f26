package dto

import "github.com/micla/access-console/internal/domain"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse cuerpo 400 con los errores de campo (se muestran inline, sin notificación).
type ValidationErrorResponse struct {
	Code   string              `json:"code"`
	Fields []domain.FieldError `json:"fields"`
}

// RedirectResponse cuerpo 401/403 del guard: a dónde ir y desde dónde se intentó entrar.
type RedirectResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
	From     string `json:"from"`
}

// MessageResponse respuesta de éxito de una mutación: mensaje del backend reenviado tal cual.
type MessageResponse struct {
	Message string `json:"message"`
}
