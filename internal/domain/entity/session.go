package entity

import "time"

// Session sesión del usuario en la consola. Guarda el token opaco del backend
// y los claims decodificados que usan el guard y las llamadas autenticadas.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	UserType    string    `json:"user_type"`
	FiscalCode  string    `json:"fiscal_code"`
	UserName    string    `json:"user_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired indica si el token ya no es válido en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.IsZero() || s.ExpiresAt.Before(now)
}

// LoginResult respuesta del backend a POST /login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserName    string `json:"us"`
	UserType    string `json:"ut"`
	FiscalCode  string `json:"fs"`
}
