package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/usecase"
)

// NoticeHandler estado de notificación de una pantalla para la sesión o el navegador actual.
type NoticeHandler struct {
	r     *responder
	guard fiber.Handler
}

// NewNoticeHandler construye el handler. guard protege las pantallas no públicas.
func NewNoticeHandler(r *responder, guard fiber.Handler) *NoticeHandler {
	return &NoticeHandler{r: r, guard: guard}
}

// Guard deja pasar sin sesión las pantallas públicas (login, registro); el resto pasa por el guard.
func (h *NoticeHandler) Guard(c *fiber.Ctx) error {
	if screen, ok := usecase.Screens[c.Params("screen")]; ok && screen.Public {
		return c.Next()
	}
	return h.guard(c)
}

// Get devuelve el estado (idle, pending, success, warning, error) y el mensaje.
// GET /api/notices/:screen
func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	screen, ok := usecase.Screens[c.Params("screen")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pantalla desconocida"})
	}
	return c.JSON(toNoticeResponse(h.r.board.Get(h.r.noticeKey(c, screen))))
}
