package usecase

import (
	"context"
	"fmt"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/application/session"
	"github.com/micla/access-console/internal/application/validation"
	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/pkg/jwt"
)

// AuthUseCase login y logout contra el backend; guarda la sesión de la consola.
type AuthUseCase struct {
	gw        ports.AuthGateway
	sessions  *session.Service
	validate  *validation.Validator
	jwtSecret string
}

// NewAuthUseCase construye el caso de uso. jwtSecret vacío decodifica el token sin verificar la firma.
func NewAuthUseCase(gw ports.AuthGateway, sessions *session.Service, v *validation.Validator, jwtSecret string) *AuthUseCase {
	return &AuthUseCase{gw: gw, sessions: sessions, validate: v, jwtSecret: jwtSecret}
}

// Login autentica, decodifica exp/us/ut/fs del token y crea la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*entity.Session, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	res, err := uc.gw.Login(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	claims, err := jwt.Decode(uc.jwtSecret, res.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("login: token del backend: %w", err)
	}
	sess := &entity.Session{
		AccessToken: res.AccessToken,
		UserType:    firstNonEmpty(res.UserType, claims.UserType),
		FiscalCode:  firstNonEmpty(res.FiscalCode, claims.FiscalCode),
		UserName:    firstNonEmpty(res.UserName, claims.UserName),
		ExpiresAt:   claims.Expiry(),
	}
	return uc.sessions.Write(ctx, sess)
}

// Logout borra la sesión; sus notificaciones se descartan por suscripción.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Clear(ctx, sessionID)
}

// SessionResponse vista pública de la sesión (sin token).
func SessionResponse(s *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		UserName:   s.UserName,
		UserType:   s.UserType,
		FiscalCode: s.FiscalCode,
		ExpiresAt:  s.ExpiresAt,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
