package dto

import "github.com/micla/access-console/internal/domain/entity"

// AccessPermissionInput permiso de acceso del formulario de alta.
type AccessPermissionInput struct {
	ProtocolNumber  string `json:"protocol_number" validate:"required"`
	Plant           string `json:"plant" validate:"required"`
	Status          string `json:"status" validate:"required,oneof=Active Requested Rejected"`
	ValidityEndDate string `json:"validity_end_date" validate:"required,isodate,future"`
	Address         string `json:"address" validate:"required"`
	Gates           []int  `json:"gates" validate:"required,min=1"`
}

// CreateAccessPermissionRequest POST /api/admin/access-permissions.
// El permiso se inserta en cada orden de PONumbers del empleado FiscalCode.
type CreateAccessPermissionRequest struct {
	FiscalCode       string                `json:"fiscal_code" validate:"required,fiscalcode"`
	PONumbers        []string              `json:"po_numbers" validate:"required,min=1"`
	AccessPermission AccessPermissionInput `json:"access_permission"`
}

// AccessPermissionForm valores completos del formulario de edición de un permiso
// (nombres planos de la fila de la grilla).
type AccessPermissionForm struct {
	ProtocolNumber                  string `json:"protocol_number"`
	Plant                           string `json:"plant"`
	Status                          string `json:"status" validate:"omitempty,oneof=Active Requested Rejected"`
	AccessPermissionValidityEndDate string `json:"access_permission_validity_end_date" validate:"required,isodate,future"`
	Address                         string `json:"address"`
	Gates                           []int  `json:"gates"`
}

// AccessPermissionFormFromRow precarga el formulario con la fila seleccionada.
func AccessPermissionFormFromRow(r entity.Row) AccessPermissionForm {
	return AccessPermissionForm{
		ProtocolNumber:                  r.ProtocolNumber,
		Plant:                           r.Plant,
		Status:                          r.Status,
		AccessPermissionValidityEndDate: r.AccessPermissionValidityEndDate.String(),
		Address:                         r.Address,
		Gates:                           r.Gates,
	}
}

// UpdateAccessPermissionRequest PATCH /api/admin/access-permissions/:po/:protocol.
type UpdateAccessPermissionRequest struct {
	Values AccessPermissionForm `json:"values"`
	Dirty  []string             `json:"dirty"`
}
