package dto

import "time"

// LoginRequest credenciales de acceso (form-urlencoded o JSON).
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SessionResponse datos de la sesión activa visibles para el navegador (sin token).
type SessionResponse struct {
	UserName   string    `json:"user_name"`
	UserType   string    `json:"user_type"`
	FiscalCode string    `json:"fiscal_code"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// LoginResponse salida de login: mensaje para la notificación y la sesión creada.
type LoginResponse struct {
	Message string          `json:"message"`
	Session SessionResponse `json:"session"`
}
