package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/usecase"
	"github.com/micla/access-console/pkg/logger"
)

// AuthHandler maneja login, logout y la sesión activa.
type AuthHandler struct {
	uc *usecase.AuthUseCase
	r  *responder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *usecase.AuthUseCase, r *responder) *AuthHandler {
	return &AuthHandler{uc: uc, r: r}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var out dto.LoginResponse
	prev := c.Cookies(h.r.cookie.Name)
	n, err := h.r.board.Submit(c.UserContext(), h.r.noticeKey(c, usecase.ScreenLogin), usecase.ScreenLogin.Fallback,
		func(ctx context.Context) (string, error) {
			sess, err := h.uc.Login(ctx, in)
			if err != nil {
				return "", err
			}
			// La sesión anterior del mismo navegador no sobrevive al nuevo login.
			if prev != "" && prev != sess.ID {
				if err := h.uc.Logout(ctx, prev); err != nil {
					h.r.reqLog(c).Warn().Err(err).Str("previous", logger.SessionTag(prev)).Msg("borrar sesión anterior")
				}
			}
			c.Locals(LocalSession, sess)
			setSessionCookie(c, h.r.cookie, sess)
			out.Session = usecase.SessionResponse(sess)
			return usecase.LoginSuccessMessage, nil
		})
	if err != nil {
		return h.r.fail(c, err, n)
	}
	out.Message = n.Message
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if s := GetSession(c); s != nil {
		if err := h.uc.Logout(c.UserContext(), s.ID); err != nil {
			h.r.reqLog(c).Warn().Err(err).Msg("logout")
		}
		c.Locals(LocalSession, nil)
	}
	clearSessionCookie(c, h.r.cookie)
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}

// Session godoc
// @Summary      Sesión activa
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.RedirectResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(usecase.SessionResponse(GetSession(c)))
}
