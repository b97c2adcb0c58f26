package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/guard"
	"github.com/micla/access-console/internal/application/session"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/pkg/logger"
)

// Locals keys de Fiber.
const (
	LocalSession   = "session"
	LocalRequestID = "request_id"
	LocalClientID  = "client_id"
)

// CookieConfig cookie que transporta el id de sesión.
// El id de navegador anónimo viaja en <Name>_client.
type CookieConfig struct {
	Name   string
	Secure bool
}

// ClientName nombre de la cookie del id de navegador.
func (c CookieConfig) ClientName() string { return c.Name + "_client" }

// SessionMiddleware carga en c.Locals la sesión de la cookie, si existe.
// Una cookie con una sesión inexistente se borra; no corta la petición.
func SessionMiddleware(svc *session.Service, cookie CookieConfig, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookie.Name)
		if id == "" {
			return c.Next()
		}
		sess, err := svc.Read(c.UserContext(), id)
		switch {
		case err == nil:
			c.Locals(LocalSession, sess)
		case errors.Is(err, domain.ErrNoSession):
			clearSessionCookie(c, cookie)
		default:
			log.ForRequest(GetRequestID(c), id).Error().Err(err).Msg("leer sesión")
		}
		return c.Next()
	}
}

// RequireRoles aplica el guard a la ruta:
//   - 401 con redirect /login → sin sesión, sin token o token vencido (la sesión se borra).
//   - 403 con redirect /unauthorized → rol fuera de allowed.
//
// Debe usarse DESPUÉS de SessionMiddleware.
func RequireRoles(svc *session.Service, cookie CookieConfig, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		decision := guard.Evaluate(sess, allowed, svc.Now())
		switch decision {
		case guard.Allow:
			return c.Next()
		case guard.RedirectLogin:
			if sess != nil {
				_ = svc.Clear(c.UserContext(), sess.ID)
				c.Locals(LocalSession, nil)
			}
			clearSessionCookie(c, cookie)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.RedirectResponse{
				Code:     "UNAUTHENTICATED",
				Message:  "sesión requerida",
				Redirect: decision.Redirect(),
				From:     c.OriginalURL(),
			})
		default:
			return c.Status(fiber.StatusForbidden).JSON(dto.RedirectResponse{
				Code:     "FORBIDDEN",
				Message:  "rol no autorizado para esta ruta",
				Redirect: decision.Redirect(),
				From:     c.OriginalURL(),
			})
		}
	}
}

// GetSession devuelve la sesión del contexto (nil si no hay).
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetRole devuelve el rol de la sesión del contexto.
func GetRole(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.UserType
	}
	return ""
}

// GetRequestID devuelve el id de la petición (después de RequestLogger).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// clientID id del navegador para las pantallas sin sesión. Se crea (y se envía la
// cookie) la primera vez que hace falta; un valor que no es un UUID se reemplaza.
func clientID(c *fiber.Ctx, cookie CookieConfig) string {
	if id, _ := c.Locals(LocalClientID).(string); id != "" {
		return id
	}
	id := c.Cookies(cookie.ClientName())
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
		c.Cookie(&fiber.Cookie{
			Name:     cookie.ClientName(),
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			Secure:   cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(LocalClientID, id)
	return id
}

func setSessionCookie(c *fiber.Ctx, cookie CookieConfig, s *entity.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     cookie.Name,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HTTPOnly: true,
		Secure:   cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, cookie CookieConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
