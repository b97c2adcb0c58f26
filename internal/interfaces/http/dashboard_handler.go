package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/micla/access-console/internal/application/usecase"
)

// DashboardHandler grilla del administrador, exportación y selectores.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
	r  *responder
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, r *responder) *DashboardHandler {
	return &DashboardHandler{uc: uc, r: r}
}

// Rows devuelve una fila por (empleado, orden, permiso).
// GET /api/admin/rows
func (h *DashboardHandler) Rows(c *fiber.Ctx) error {
	out, err := h.uc.Rows(c.UserContext(), GetSession(c).AccessToken)
	if err != nil {
		return h.r.failRead(c, usecase.ScreenDashboard, err)
	}
	return c.JSON(out)
}

// Export descarga la grilla en el formato pedido.
// GET /api/admin/rows/export?format=xlsx|pdf
//
// Sin format se usa xlsx.
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	doc, err := h.uc.Export(c.UserContext(), GetSession(c).AccessToken, c.Query("format", "xlsx"))
	if err != nil {
		return h.r.failRead(c, usecase.ScreenDashboard, err)
	}
	return sendDocument(c, doc, "attachment")
}

// FiscalCodes códigos fiscales y sus órdenes para el formulario de permisos.
// GET /api/admin/fiscal-codes
func (h *DashboardHandler) FiscalCodes(c *fiber.Ctx) error {
	out, err := h.uc.FiscalCodes(c.UserContext(), GetSession(c).AccessToken)
	if err != nil {
		return h.r.failRead(c, usecase.ScreenAddAccessPermission, err)
	}
	return c.JSON(out)
}
