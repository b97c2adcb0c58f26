package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/notify"
	"github.com/micla/access-console/internal/application/session"
	"github.com/micla/access-console/internal/application/usecase"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/pkg/logger"
)

// responder traduce resultados de los casos de uso a respuestas HTTP y notificaciones.
// Lo comparten todos los handlers.
type responder struct {
	board    *notify.Board
	sessions *session.Service
	cookie   CookieConfig
	log      *logger.Logger
}

// noticeKey clave de la notificación. Las pantallas públicas (login, registro) se
// identifican por el navegador; el resto por la sesión.
func (r *responder) noticeKey(c *fiber.Ctx, screen usecase.Screen) notify.Key {
	if !screen.Public {
		if s := GetSession(c); s != nil {
			return notify.Key{SessionID: s.ID, Screen: screen.Name}
		}
	}
	return notify.Key{SessionID: "client:" + clientID(c, r.cookie), Screen: screen.Name}
}

// reqLog logger con el id de la petición y la etiqueta de la sesión activa.
func (r *responder) reqLog(c *fiber.Ctx) *logger.Logger {
	sessionID := ""
	if s := GetSession(c); s != nil {
		sessionID = s.ID
	}
	return r.log.ForRequest(GetRequestID(c), sessionID)
}

// submit ejecuta una mutación de pantalla a través del tablero de notificaciones.
func (r *responder) submit(c *fiber.Ctx, screen usecase.Screen, fn func(ctx context.Context) (string, error)) error {
	n, err := r.board.Submit(c.UserContext(), r.noticeKey(c, screen), screen.Fallback, fn)
	if err != nil {
		return r.fail(c, err, n)
	}
	return c.JSON(toNoticeResponse(n))
}

// failRead responde el error de una lectura: sin estado en el tablero, mismo mapeo.
func (r *responder) failRead(c *fiber.Ctx, screen usecase.Screen, err error) error {
	n := notify.Notice{Screen: screen.Name, State: notify.Error, Message: notify.Detail(err, screen.Fallback)}
	return r.fail(c, err, n)
}

// fail mapea err a status y cuerpo:
//   - validación → 400 VALIDATION con los campos (inline, sin notificación).
//   - sin cambios → 422 NO_CHANGES (warning).
//   - envío en curso → 409 BUSY.
//   - backend 401 → la sesión se borra y 401 con redirect /login.
//   - backend 4xx → mismo status; otros → 502. Timeout → 504.
//   - respuesta del backend sobre el límite → 502 BACKEND_TOO_LARGE.
func (r *responder) fail(c *fiber.Ctx, err error, n notify.Notice) error {
	var verr *domain.ValidationError
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Code: "VALIDATION", Fields: verr.Fields})
	case errors.Is(err, domain.ErrNoChanges):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_CHANGES", Message: n.Message})
	case errors.Is(err, domain.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUSY", Message: "request already in progress"})
	case errors.As(err, &apiErr):
		if apiErr.Status == fiber.StatusUnauthorized {
			if s := GetSession(c); s != nil {
				_ = r.sessions.Clear(c.UserContext(), s.ID)
				clearSessionCookie(c, r.cookie)
				return c.Status(fiber.StatusUnauthorized).JSON(dto.RedirectResponse{
					Code: "UNAUTHENTICATED", Message: n.Message, Redirect: "/login", From: c.OriginalURL(),
				})
			}
		}
		status := fiber.StatusBadGateway
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			status = apiErr.Status
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: "BACKEND", Message: n.Message})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "BACKEND_TIMEOUT", Message: n.Message})
	case errors.Is(err, domain.ErrTooLarge):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_TOO_LARGE", Message: n.Message})
	case errors.Is(err, domain.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: n.Message})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: n.Message})
	default:
		r.reqLog(c).Error().Err(err).Str("screen", n.Screen).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: n.Message})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// sendDocument responde un archivo binario.
func sendDocument(c *fiber.Ctx, doc *entity.Document, disposition string) error {
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, disposition+`; filename="`+strings.ReplaceAll(doc.Filename, `"`, "")+`"`)
	return c.Send(doc.Data)
}

func toNoticeResponse(n notify.Notice) dto.NoticeResponse {
	out := dto.NoticeResponse{Screen: n.Screen, State: string(n.State), Message: n.Message}
	switch n.State {
	case notify.Success, notify.Warning, notify.Error:
		out.Severity = string(n.State)
	}
	return out
}
