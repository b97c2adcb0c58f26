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

// AccessPermissionUseCase alta y edición de permisos de acceso.
type AccessPermissionUseCase struct {
	gw       ports.AccessPermissionGateway
	validate *validation.Validator
}

// NewAccessPermissionUseCase construye el caso de uso.
func NewAccessPermissionUseCase(gw ports.AccessPermissionGateway, v *validation.Validator) *AccessPermissionUseCase {
	return &AccessPermissionUseCase{gw: gw, validate: v}
}

// Create agrega el permiso a las órdenes req.PONumbers del empleado req.FiscalCode.
func (uc *AccessPermissionUseCase) Create(ctx context.Context, token string, req dto.CreateAccessPermissionRequest) (string, error) {
	if err := uc.validate.Struct(req); err != nil {
		return "", err
	}
	ap, err := accessPermissionFromInput("access_permission", req.AccessPermission)
	if err != nil {
		return "", err
	}
	return uc.gw.InsertAccessPermission(ctx, token, req.FiscalCode, req.PONumbers, ap)
}

// Update envía solo los campos modificados del permiso protocolNumber de la orden poNumber.
// Sin cambios devuelve domain.ErrNoChanges y no llama al backend.
func (uc *AccessPermissionUseCase) Update(ctx context.Context, token, poNumber, protocolNumber string, req dto.UpdateAccessPermissionRequest) (string, error) {
	if poNumber == "" || protocolNumber == "" {
		return "", domain.NewValidationError("protocol_number", "Required")
	}
	dirty, err := patch.ParseDirty(req.Dirty, patch.APFields)
	if err != nil {
		return "", err
	}
	if err := uc.validate.Struct(req.Values); err != nil {
		return "", err
	}
	p, err := patch.BuildAccessPermission(req.Values, dirty)
	if err != nil {
		return "", err
	}
	return uc.gw.UpdateAccessPermission(ctx, token, poNumber, protocolNumber, p)
}

func accessPermissionFromInput(prefix string, in dto.AccessPermissionInput) (entity.AccessPermission, error) {
	validity, err := requiredDate(prefix+".validity_end_date", in.ValidityEndDate)
	if err != nil {
		return entity.AccessPermission{}, err
	}
	return entity.AccessPermission{
		ProtocolNumber:  in.ProtocolNumber,
		Plant:           in.Plant,
		Status:          in.Status,
		ValidityEndDate: validity,
		Address:         in.Address,
		Gates:           append([]int{}, in.Gates...),
	}, nil
}
