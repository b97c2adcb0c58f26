package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/usecase"
)

// PurchaseOrderHandler alta, edición, asignación y borrado de órdenes de compra.
type PurchaseOrderHandler struct {
	uc *usecase.PurchaseOrderUseCase
	r  *responder
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *usecase.PurchaseOrderUseCase, r *responder) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, r: r}
}

// Create godoc
// @Summary      Crear orden de compra para uno o más empleados
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "fiscal_codes, purchase_order"
// @Success      200   {object}  dto.NoticeResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/admin/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	token := GetSession(c).AccessToken
	return h.r.submit(c, usecase.ScreenAddPurchaseOrder, func(ctx context.Context) (string, error) {
		return h.uc.Create(ctx, token, req)
	})
}

// Update godoc
// @Summary      Editar orden de compra (solo campos modificados)
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        po    path  string  true  "número de orden"
// @Param        body  body  dto.UpdatePurchaseOrderRequest  true  "values, dirty"
// @Success      200   {object}  dto.NoticeResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/admin/purchase-orders/{po} [patch]
func (h *PurchaseOrderHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	token, po := GetSession(c).AccessToken, c.Params("po")
	return h.r.submit(c, usecase.ScreenEditPurchaseOrder, func(ctx context.Context) (string, error) {
		return h.uc.Update(ctx, token, po, req)
	})
}

// AttachEmployee godoc
// @Summary      Asignar una orden existente a otro empleado
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        po    path  string  true  "número de orden"
// @Param        body  body  dto.AttachEmployeeRequest  true  "fiscal_code, row"
// @Success      200   {object}  dto.NoticeResponse
// @Router       /api/admin/purchase-orders/{po}/employees [post]
func (h *PurchaseOrderHandler) AttachEmployee(c *fiber.Ctx) error {
	var req dto.AttachEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	token, po := GetSession(c).AccessToken, c.Params("po")
	return h.r.submit(c, usecase.ScreenAddUserToPO, func(ctx context.Context) (string, error) {
		return h.uc.AttachEmployee(ctx, token, po, req)
	})
}

// Delete godoc
// @Summary      Borrar orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        po  path  string  true  "número de orden"
// @Success      200  {object}  dto.NoticeResponse
// @Router       /api/admin/purchase-orders/{po} [delete]
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	token, po := GetSession(c).AccessToken, c.Params("po")
	return h.r.submit(c, usecase.ScreenDeletePurchaseOrder, func(ctx context.Context) (string, error) {
		return h.uc.Delete(ctx, token, po)
	})
}
