package usecase

import (
	"context"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/patch"
	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/application/validation"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

// PurchaseOrderUseCase alta, edición, asignación y borrado de órdenes de compra.
type PurchaseOrderUseCase struct {
	gw       ports.PurchaseOrderGateway
	validate *validation.Validator
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(gw ports.PurchaseOrderGateway, v *validation.Validator) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{gw: gw, validate: v}
}

// Create crea la orden para todos los empleados de req.FiscalCodes, con su permiso
// inicial si viene uno.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, token string, req dto.CreatePurchaseOrderRequest) (string, error) {
	if err := uc.validate.Struct(req); err != nil {
		return "", err
	}
	po, err := purchaseOrderFromInput(req.PurchaseOrder)
	if err != nil {
		return "", err
	}
	return uc.gw.CreatePurchaseOrder(ctx, token, req.FiscalCodes, po)
}

// Update envía solo los campos modificados de la orden poNumber.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, token, poNumber string, req dto.UpdatePurchaseOrderRequest) (string, error) {
	if poNumber == "" {
		return "", domain.NewValidationError("po_number", "Required")
	}
	dirty, err := patch.ParseDirty(req.Dirty, patch.POFields)
	if err != nil {
		return "", err
	}
	if err := uc.validate.Struct(req.Values); err != nil {
		return "", err
	}
	p, err := patch.BuildPurchaseOrder(req.Values, dirty)
	if err != nil {
		return "", err
	}
	return uc.gw.UpdatePurchaseOrder(ctx, token, poNumber, p)
}

// AttachEmployee copia la orden de la fila seleccionada a otro empleado, sin permisos.
func (uc *PurchaseOrderUseCase) AttachEmployee(ctx context.Context, token, poNumber string, req dto.AttachEmployeeRequest) (string, error) {
	if err := uc.validate.Struct(req); err != nil {
		return "", err
	}
	if req.Row.PONumber == "" {
		req.Row.PONumber = poNumber
	}
	if req.Row.PONumber != poNumber {
		return "", domain.NewValidationError("row.po_number", "Row does not belong to purchase order "+poNumber)
	}
	return uc.gw.AttachPurchaseOrder(ctx, token, req.FiscalCode, patch.PurchaseOrderFromRow(req.Row))
}

// Delete borra la orden poNumber de todos los empleados.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, token, poNumber string) (string, error) {
	if poNumber == "" {
		return "", domain.NewValidationError("po_number", "Required")
	}
	return uc.gw.DeletePurchaseOrder(ctx, token, poNumber)
}

func purchaseOrderFromInput(in dto.PurchaseOrderInput) (entity.PurchaseOrder, error) {
	issue, err := requiredDate("purchase_order.issue_date", in.IssueDate)
	if err != nil {
		return entity.PurchaseOrder{}, err
	}
	validity, err := requiredDate("purchase_order.validity_end_date", in.ValidityEndDate)
	if err != nil {
		return entity.PurchaseOrder{}, err
	}
	po := entity.PurchaseOrder{
		PONumber:        in.PONumber,
		Description:     in.Description,
		IssueDate:       issue,
		ValidityEndDate: validity,
		Duvri:           in.Duvri,
		Locations:       append([]string{}, in.Locations...),
		Requester: &entity.Requester{
			FirstName: in.Requester.FirstName,
			LastName:  in.Requester.LastName,
			Email:     in.Requester.Email,
		},
		Subapalto: &entity.Subapalto{
			Number: in.Subapalto.Number,
			Status: in.Subapalto.Status,
		},
		AccessPermissions: []entity.AccessPermission{},
	}
	if in.AccessPermission != nil {
		ap, err := accessPermissionFromInput("purchase_order.access_permission", *in.AccessPermission)
		if err != nil {
			return entity.PurchaseOrder{}, err
		}
		po.AccessPermissions = append(po.AccessPermissions, ap)
	}
	return po, nil
}

// requiredDate convierte una fecha ya validada del formulario.
func requiredDate(field, s string) (entity.Date, error) {
	d, err := entity.ParseDate(s)
	if err != nil {
		return entity.Date{}, domain.NewValidationError(field, "Invalid date, expected YYYY-MM-DD")
	}
	return d, nil
}
