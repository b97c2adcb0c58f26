package patch

import (
	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

// POField campo editable del formulario de orden de compra (nombres planos de la fila).
type POField string

const (
	POPONumber           POField = "po_number"
	PODescription        POField = "description"
	POIssueDate          POField = "issue_date"
	POValidityEndDate    POField = "purchase_order_validity_end_date"
	PODuvri              POField = "duvri"
	POLocations          POField = "locations"
	PORequesterFirstName POField = "requester_first_name"
	PORequesterLastName  POField = "requester_last_name"
	PORequesterEmail     POField = "requester_email"
	POSubapaltoNumber    POField = "subapalto_number"
	POSubapaltoStatus    POField = "subapalto_status"
)

// POFields todos los campos editables de una orden.
var POFields = []POField{
	POPONumber, PODescription, POIssueDate, POValidityEndDate, PODuvri, POLocations,
	PORequesterFirstName, PORequesterLastName, PORequesterEmail,
	POSubapaltoNumber, POSubapaltoStatus,
}

// RequesterPatch solicitante re-anidado.
type RequesterPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

func (r *RequesterPatch) empty() bool {
	return r == nil || (r.FirstName == nil && r.LastName == nil && r.Email == nil)
}

// SubapaltoPatch subcontratación re-anidada.
type SubapaltoPatch struct {
	Number *string `json:"subapalto_number,omitempty"`
	Status *string `json:"subapalto_status,omitempty"`
}

func (s *SubapaltoPatch) empty() bool {
	return s == nil || (s.Number == nil && s.Status == nil)
}

// PurchaseOrderPatch cuerpo de PATCH /update_purchase_order/{po}.
type PurchaseOrderPatch struct {
	PONumber        *string         `json:"po_number,omitempty"`
	Description     *string         `json:"description,omitempty"`
	IssueDate       *entity.Date    `json:"issue_date,omitempty"`
	ValidityEndDate *entity.Date    `json:"validity_end_date,omitempty"`
	Duvri           *bool           `json:"duvri,omitempty"`
	Locations       []string        `json:"locations,omitempty"`
	Requester       *RequesterPatch `json:"requester,omitempty"`
	Subapalto       *SubapaltoPatch `json:"subapalto,omitempty"`
}

// IsEmpty indica que tras re-anidar y limpiar no queda nada que enviar.
func (p PurchaseOrderPatch) IsEmpty() bool {
	return p.PONumber == nil && p.Description == nil && p.IssueDate == nil &&
		p.ValidityEndDate == nil && p.Duvri == nil && len(p.Locations) == 0 &&
		p.Requester.empty() && p.Subapalto.empty()
}

// BuildPurchaseOrder patch con los campos modificados de v, re-anidando solicitante
// y subapalto. Se descartan las fechas vacías, la lista de ubicaciones vacía y los
// objetos anidados que quedan sin campos. Si no queda nada devuelve domain.ErrNoChanges.
func BuildPurchaseOrder(v dto.PurchaseOrderForm, dirty Dirty[POField]) (PurchaseOrderPatch, error) {
	var p PurchaseOrderPatch
	if dirty.Empty() {
		return p, domain.ErrNoChanges
	}
	req := &RequesterPatch{}
	sub := &SubapaltoPatch{}
	for _, f := range dirty.Fields() {
		switch f {
		case POPONumber:
			p.PONumber = ptr(v.PONumber)
		case PODescription:
			p.Description = ptr(v.Description)
		case POIssueDate:
			d, err := optionalDate(string(f), v.IssueDate)
			if err != nil {
				return PurchaseOrderPatch{}, err
			}
			p.IssueDate = d
		case POValidityEndDate:
			d, err := optionalDate(string(f), v.PurchaseOrderValidityEndDate)
			if err != nil {
				return PurchaseOrderPatch{}, err
			}
			p.ValidityEndDate = d
		case PODuvri:
			p.Duvri = ptr(v.Duvri)
		case POLocations:
			if len(v.Locations) > 0 {
				p.Locations = append([]string{}, v.Locations...)
			}
		case PORequesterFirstName:
			req.FirstName = ptr(v.RequesterFirstName)
		case PORequesterLastName:
			req.LastName = ptr(v.RequesterLastName)
		case PORequesterEmail:
			req.Email = ptr(v.RequesterEmail)
		case POSubapaltoNumber:
			sub.Number = ptr(v.SubapaltoNumber)
		case POSubapaltoStatus:
			sub.Status = ptr(v.SubapaltoStatus)
		}
	}
	if !req.empty() {
		p.Requester = req
	}
	if !sub.empty() {
		p.Subapalto = sub
	}
	if p.IsEmpty() {
		return PurchaseOrderPatch{}, domain.ErrNoChanges
	}
	return p, nil
}

// optionalDate nil si s está vacío; el backend no recibe fechas vacías de una orden.
func optionalDate(field, s string) (*entity.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, domain.NewValidationError(field, "Invalid date, expected YYYY-MM-DD")
	}
	return &d, nil
}

// PurchaseOrderFromRow reconstruye la orden anidada de una fila, sin permisos.
// Es el cuerpo de "Add User to PO": la misma orden se asigna a otro empleado.
func PurchaseOrderFromRow(r entity.Row) entity.PurchaseOrder {
	po := entity.PurchaseOrder{
		PONumber:          r.PONumber,
		Description:       r.Description,
		IssueDate:         r.IssueDate,
		ValidityEndDate:   r.PurchaseOrderValidityEndDate,
		Duvri:             r.Duvri,
		Locations:         append([]string{}, r.Locations...),
		AccessPermissions: []entity.AccessPermission{},
	}
	if r.RequesterFirstName != "" || r.RequesterLastName != "" || r.RequesterEmail != "" {
		po.Requester = &entity.Requester{
			FirstName: r.RequesterFirstName,
			LastName:  r.RequesterLastName,
			Email:     r.RequesterEmail,
		}
	}
	if r.SubapaltoNumber != "" || r.SubapaltoStatus != "" {
		po.Subapalto = &entity.Subapalto{Number: r.SubapaltoNumber, Status: r.SubapaltoStatus}
	}
	return po
}
