package dto

import "github.com/micla/access-console/internal/domain/entity"

// RequesterInput solicitante en el alta de una orden.
type RequesterInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,miclaemail"`
}

// SubapaltoInput subcontratación en el alta de una orden.
type SubapaltoInput struct {
	Number string `json:"subapalto_number" validate:"required"`
	Status string `json:"subapalto_status" validate:"required,oneof=Active Requested Rejected"`
}

// PurchaseOrderInput orden de compra del formulario "Add Purchase Order".
// AccessPermission es opcional: si viene, la orden se crea con ese único permiso.
type PurchaseOrderInput struct {
	PONumber         string                 `json:"po_number" validate:"required"`
	Description      string                 `json:"description" validate:"required"`
	Locations        []string               `json:"locations" validate:"required,min=1"`
	Duvri            bool                   `json:"duvri"`
	IssueDate        string                 `json:"issue_date" validate:"required,isodate"`
	ValidityEndDate  string                 `json:"validity_end_date" validate:"required,isodate"`
	Requester        RequesterInput         `json:"requester"`
	Subapalto        SubapaltoInput         `json:"subapalto"`
	AccessPermission *AccessPermissionInput `json:"access_permission"`
}

// CreatePurchaseOrderRequest POST /api/admin/purchase-orders.
type CreatePurchaseOrderRequest struct {
	FiscalCodes   []string           `json:"fiscal_codes" validate:"required,min=1,dive,fiscalcode"`
	PurchaseOrder PurchaseOrderInput `json:"purchase_order"`
}

// PurchaseOrderForm valores completos del formulario de edición de una orden,
// con los nombres planos de la fila de la grilla.
type PurchaseOrderForm struct {
	PONumber                     string   `json:"po_number"`
	Description                  string   `json:"description"`
	IssueDate                    string   `json:"issue_date" validate:"omitempty,isodate,notpast"`
	PurchaseOrderValidityEndDate string   `json:"purchase_order_validity_end_date" validate:"required,isodate"`
	Duvri                        bool     `json:"duvri"`
	Locations                    []string `json:"locations"`
	RequesterFirstName           string   `json:"requester_first_name"`
	RequesterLastName            string   `json:"requester_last_name"`
	RequesterEmail               string   `json:"requester_email" validate:"omitempty,miclaemail"`
	SubapaltoNumber              string   `json:"subapalto_number"`
	SubapaltoStatus              string   `json:"subapalto_status" validate:"omitempty,oneof=Active Requested Rejected"`
}

// PurchaseOrderFormFromRow precarga el formulario con la fila seleccionada.
func PurchaseOrderFormFromRow(r entity.Row) PurchaseOrderForm {
	return PurchaseOrderForm{
		PONumber:                     r.PONumber,
		Description:                  r.Description,
		IssueDate:                    r.IssueDate.String(),
		PurchaseOrderValidityEndDate: r.PurchaseOrderValidityEndDate.String(),
		Duvri:                        r.Duvri,
		Locations:                    r.Locations,
		RequesterFirstName:           r.RequesterFirstName,
		RequesterLastName:            r.RequesterLastName,
		RequesterEmail:               r.RequesterEmail,
		SubapaltoNumber:              r.SubapaltoNumber,
		SubapaltoStatus:              r.SubapaltoStatus,
	}
}

// UpdatePurchaseOrderRequest PATCH /api/admin/purchase-orders/:po.
// Dirty son los nombres de campo que el usuario modificó.
type UpdatePurchaseOrderRequest struct {
	Values PurchaseOrderForm `json:"values"`
	Dirty  []string          `json:"dirty"`
}

// AttachEmployeeRequest POST /api/admin/purchase-orders/:po/employees ("Add User to PO").
// Row es la fila de la orden que se copia al nuevo empleado.
type AttachEmployeeRequest struct {
	FiscalCode string     `json:"fiscal_code" validate:"required,fiscalcode"`
	Row        entity.Row `json:"row"`
}
