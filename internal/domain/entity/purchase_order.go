package entity

// Estados válidos de un permiso de acceso (y de un subapalto).
const (
	StatusActive    = "Active"
	StatusRequested = "Requested"
	StatusRejected  = "Rejected"
)

// Requester solicitante de una orden de compra.
type Requester struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Subapalto referencia de subcontratación de una orden de compra.
type Subapalto struct {
	Number string `json:"subapalto_number,omitempty"`
	Status string `json:"subapalto_status,omitempty"`
}

// AccessPermission autorización temporal a una planta/dirección/conjunto de puertas.
type AccessPermission struct {
	ProtocolNumber  string `json:"protocol_number,omitempty"`
	Plant           string `json:"plant,omitempty"`
	Status          string `json:"status,omitempty"`
	ValidityEndDate Date   `json:"validity_end_date"`
	Address         string `json:"address,omitempty"`
	Gates           []int  `json:"gates"`
}

// PurchaseOrder orden de compra; el mismo PONumber puede estar asignado a varios empleados.
type PurchaseOrder struct {
	PONumber          string             `json:"po_number,omitempty"`
	Description       string             `json:"description,omitempty"`
	IssueDate         Date               `json:"issue_date"`
	ValidityEndDate   Date               `json:"validity_end_date"`
	Duvri             bool               `json:"duvri"`
	Requester         *Requester         `json:"requester,omitempty"`
	Locations         []string           `json:"locations"`
	AccessPermissions []AccessPermission `json:"access_permission"`
	Subapalto         *Subapalto         `json:"subapalto,omitempty"`
}
