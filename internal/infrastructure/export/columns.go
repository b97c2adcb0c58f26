// Package export genera los archivos descargables de la grilla de administración
// (XLSX con excelize y PDF con Maroto v2).
package export

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/micla/access-console/internal/domain/entity"
)

// column columna exportada: clave JSON de la fila, ancho en la grilla PDF (0 = solo XLSX)
// y extractor del valor como texto.
type column struct {
	key   string
	pdf   int
	value func(r entity.Row) string
}

// columns orden de la grilla del dashboard.
var columns = []column{
	{"fiscal_code", 3, func(r entity.Row) string { return r.FiscalCode }},
	{"first_name", 2, func(r entity.Row) string { return r.FirstName }},
	{"last_name", 2, func(r entity.Row) string { return r.LastName }},
	{"contract_validity_start_date", 0, func(r entity.Row) string { return r.ContractValidityStartDate.String() }},
	{"contract_validity_end_date", 0, func(r entity.Row) string { return r.ContractValidityEndDate.String() }},
	{"po_number", 2, func(r entity.Row) string { return r.PONumber }},
	{"description", 0, func(r entity.Row) string { return r.Description }},
	{"issue_date", 0, func(r entity.Row) string { return r.IssueDate.String() }},
	{"purchase_order_validity_end_date", 2, func(r entity.Row) string { return r.PurchaseOrderValidityEndDate.String() }},
	{"duvri", 1, func(r entity.Row) string { return yesNo(r.Duvri) }},
	{"locations", 0, func(r entity.Row) string { return strings.Join(r.Locations, ", ") }},
	{"requester_first_name", 0, func(r entity.Row) string { return r.RequesterFirstName }},
	{"requester_last_name", 0, func(r entity.Row) string { return r.RequesterLastName }},
	{"requester_email", 0, func(r entity.Row) string { return r.RequesterEmail }},
	{"subapalto_number", 0, func(r entity.Row) string { return r.SubapaltoNumber }},
	{"subapalto_status", 0, func(r entity.Row) string { return r.SubapaltoStatus }},
	{"protocol_number", 2, func(r entity.Row) string { return r.ProtocolNumber }},
	{"plant", 2, func(r entity.Row) string { return r.Plant }},
	{"status", 2, func(r entity.Row) string { return r.Status }},
	{"access_permission_validity_end_date", 2, func(r entity.Row) string { return permissionDate(r) }},
	{"address", 0, func(r entity.Row) string { return r.Address }},
	{"gates", 2, func(r entity.Row) string { return joinInts(r.Gates) }},
}

// acronyms títulos que cases.Title no resuelve bien.
var acronyms = map[string]string{
	"po_number": "PO Number",
	"duvri":     "DUVRI",
}

// title "purchase_order_validity_end_date" -> "Purchase Order Validity End Date".
func title(key string) string {
	if t, ok := acronyms[key]; ok {
		return t
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// pdfColumns columnas con ancho en la grilla PDF.
func pdfColumns() []column {
	out := make([]column, 0, len(columns))
	for _, c := range columns {
		if c.pdf > 0 {
			out = append(out, c)
		}
	}
	return out
}

// permissionDate deja vacía la vigencia de marcador de las órdenes sin permisos.
func permissionDate(r entity.Row) string {
	if r.ProtocolNumber == "" && r.AccessPermissionValidityEndDate.Equal(entity.Epoch) {
		return ""
	}
	return r.AccessPermissionValidityEndDate.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
