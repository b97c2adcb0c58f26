package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/usecase"
)

// AccessPermissionHandler alta y edición de permisos de acceso.
type AccessPermissionHandler struct {
	uc *usecase.AccessPermissionUseCase
	r  *responder
}

// NewAccessPermissionHandler construye el handler.
func NewAccessPermissionHandler(uc *usecase.AccessPermissionUseCase, r *responder) *AccessPermissionHandler {
	return &AccessPermissionHandler{uc: uc, r: r}
}

// Create godoc
// @Summary      Agregar permiso de acceso a órdenes de un empleado
// @Tags         access-permissions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccessPermissionRequest  true  "fiscal_code, po_numbers, access_permission"
// @Success      200   {object}  dto.NoticeResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/admin/access-permissions [post]
func (h *AccessPermissionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAccessPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	token := GetSession(c).AccessToken
	return h.r.submit(c, usecase.ScreenAddAccessPermission, func(ctx context.Context) (string, error) {
		return h.uc.Create(ctx, token, req)
	})
}

// Update godoc
// @Summary      Editar permiso de acceso (solo campos modificados)
// @Tags         access-permissions
// @Accept       json
// @Produce      json
// @Param        po        path  string  true  "número de orden"
// @Param        protocol  path  string  true  "número de protocolo"
// @Param        body      body  dto.UpdateAccessPermissionRequest  true  "values, dirty"
// @Success      200   {object}  dto.NoticeResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/admin/access-permissions/{po}/{protocol} [patch]
func (h *AccessPermissionHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAccessPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	token, po, protocol := GetSession(c).AccessToken, c.Params("po"), c.Params("protocol")
	return h.r.submit(c, usecase.ScreenEditAccessPermission, func(ctx context.Context) (string, error) {
		return h.uc.Update(ctx, token, po, protocol, req)
	})
}
