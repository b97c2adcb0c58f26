package entity

import "encoding/json"

// Row fila plana de la grilla: un Employee × una PurchaseOrder × un AccessPermission.
// Es solo de vista; se recalcula en cada listado y nunca se persiste.
type Row struct {
	// ID posición 0-based en el listado. No es estable entre listados.
	ID int `json:"id"`
	// Key identidad natural estable de la fila (fiscal_code/po_number/protocol_number/plant).
	Key string `json:"key"`

	FiscalCode                string `json:"fiscal_code"`
	FirstName                 string `json:"first_name"`
	LastName                  string `json:"last_name"`
	ContractValidityStartDate Date   `json:"contract_validity_start_date"`
	ContractValidityEndDate   Date   `json:"contract_validity_end_date"`

	PONumber                     string   `json:"po_number"`
	Description                  string   `json:"description"`
	IssueDate                    Date     `json:"issue_date"`
	PurchaseOrderValidityEndDate Date     `json:"purchase_order_validity_end_date"`
	Duvri                        bool     `json:"duvri"`
	Locations                    []string `json:"locations"`
	RequesterFirstName           string   `json:"requester_first_name"`
	RequesterLastName            string   `json:"requester_last_name"`
	RequesterEmail               string   `json:"requester_email"`
	SubapaltoNumber              string   `json:"subapalto_number"`
	SubapaltoStatus              string   `json:"subapalto_status"`

	ProtocolNumber                  string `json:"protocol_number"`
	Plant                           string `json:"plant"`
	Status                          string `json:"status"`
	AccessPermissionValidityEndDate Date   `json:"access_permission_validity_end_date"`
	Address                         string `json:"address"`
	Gates                           []int  `json:"gates"`
}

// MarshalJSON serializa las fechas ausentes de la fila como "" (la grilla no muestra null).
func (r Row) MarshalJSON() ([]byte, error) {
	type plain Row
	return json.Marshal(struct {
		plain
		ContractValidityStartDate       string `json:"contract_validity_start_date"`
		ContractValidityEndDate         string `json:"contract_validity_end_date"`
		IssueDate                       string `json:"issue_date"`
		PurchaseOrderValidityEndDate    string `json:"purchase_order_validity_end_date"`
		AccessPermissionValidityEndDate string `json:"access_permission_validity_end_date"`
	}{
		plain:                           plain(r),
		ContractValidityStartDate:       r.ContractValidityStartDate.String(),
		ContractValidityEndDate:         r.ContractValidityEndDate.String(),
		IssueDate:                       r.IssueDate.String(),
		PurchaseOrderValidityEndDate:    r.PurchaseOrderValidityEndDate.String(),
		AccessPermissionValidityEndDate: r.AccessPermissionValidityEndDate.String(),
	})
}
