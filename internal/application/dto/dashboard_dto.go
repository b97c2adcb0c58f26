package dto

import "github.com/micla/access-console/internal/domain/entity"

// RowsResponse GET /api/admin/rows: filas aplanadas de todos los empleados.
type RowsResponse struct {
	Rows  []entity.Row `json:"rows"`
	Total int          `json:"total"`
}

// FiscalCodesResponse GET /api/admin/fiscal-codes: código fiscal -> órdenes asignadas.
// Alimenta los selectores del formulario "Add Access Permission".
type FiscalCodesResponse struct {
	FiscalCodes    []string            `json:"fiscal_codes"`
	PurchaseOrders map[string][]string `json:"purchase_orders"`
}

// NoticeResponse estado de la notificación de una pantalla.
type NoticeResponse struct {
	Screen   string `json:"screen"`
	State    string `json:"state"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}
