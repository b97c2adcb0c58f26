package patch

import (
	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

// APField campo editable del formulario de permiso de acceso (nombres de la fila de la grilla).
type APField string

const (
	APProtocolNumber  APField = "protocol_number"
	APPlant           APField = "plant"
	APStatus          APField = "status"
	APValidityEndDate APField = "access_permission_validity_end_date"
	APAddress         APField = "address"
	APGates           APField = "gates"
)

// APFields todos los campos editables de un permiso.
var APFields = []APField{APProtocolNumber, APPlant, APStatus, APValidityEndDate, APAddress, APGates}

// AccessPermissionPatch cuerpo de PATCH /update_access_permission/{po}/{protocol}.
// La vigencia viaja como validity_end_date (nombre anidado del backend).
type AccessPermissionPatch struct {
	ProtocolNumber  *string      `json:"protocol_number,omitempty"`
	Plant           *string      `json:"plant,omitempty"`
	Status          *string      `json:"status,omitempty"`
	ValidityEndDate *entity.Date `json:"validity_end_date,omitempty"`
	Address         *string      `json:"address,omitempty"`
	Gates           *[]int       `json:"gates,omitempty"`
}

// BuildAccessPermission patch con los campos modificados de v.
// Sin campos modificados devuelve domain.ErrNoChanges.
func BuildAccessPermission(v dto.AccessPermissionForm, dirty Dirty[APField]) (AccessPermissionPatch, error) {
	var p AccessPermissionPatch
	if dirty.Empty() {
		return p, domain.ErrNoChanges
	}
	for _, f := range dirty.Fields() {
		switch f {
		case APProtocolNumber:
			p.ProtocolNumber = ptr(v.ProtocolNumber)
		case APPlant:
			p.Plant = ptr(v.Plant)
		case APStatus:
			p.Status = ptr(v.Status)
		case APValidityEndDate:
			d, err := parseDate(string(f), v.AccessPermissionValidityEndDate)
			if err != nil {
				return AccessPermissionPatch{}, err
			}
			p.ValidityEndDate = d
		case APAddress:
			p.Address = ptr(v.Address)
		case APGates:
			gates := append([]int{}, v.Gates...)
			p.Gates = &gates
		}
	}
	return p, nil
}

// parseDate fecha opcional del formulario; vacía viaja como null.
func parseDate(field, s string) (*entity.Date, error) {
	if s == "" {
		return &entity.Date{}, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, domain.NewValidationError(field, "Invalid date, expected YYYY-MM-DD")
	}
	return &d, nil
}
