// Package grid aplana empleados con órdenes y permisos anidados en filas para la grilla.
package grid

import (
	"time"

	"github.com/micla/access-console/internal/domain/entity"
)

// Flattener convierte la jerarquía Employee -> PurchaseOrder -> AccessPermission en filas.
// El reloj fija la fecha por defecto de las órdenes sin vigencia.
type Flattener struct {
	now func() time.Time
}

// NewFlattener crea el aplanador. now nil usa time.Now.
func NewFlattener(now func() time.Time) *Flattener {
	if now == nil {
		now = time.Now
	}
	return &Flattener{now: now}
}

// Flatten devuelve una fila por (empleado, orden, permiso).
//   - Una orden sin permisos produce una fila con los campos de permiso vacíos
//     y vigencia del permiso 1970-01-01.
//   - Una orden sin vigencia toma la fecha de hoy.
//   - Un empleado sin órdenes no produce filas.
//
// ID es la posición 0-based en el resultado; Key identifica la fila entre listados.
func (f *Flattener) Flatten(employees []entity.Employee) []entity.Row {
	today := entity.DateOf(f.now())
	rows := make([]entity.Row, 0, countRows(employees))
	for i := range employees {
		rows = appendEmployee(rows, &employees[i], today)
	}
	for i := range rows {
		rows[i].ID = i
	}
	return rows
}

// FlattenOrders filas de las órdenes de un solo empleado (vista "mis órdenes").
func (f *Flattener) FlattenOrders(e *entity.Employee) []entity.Row {
	if e == nil {
		return []entity.Row{}
	}
	return f.Flatten([]entity.Employee{*e})
}

// CountRows número de filas que produce Flatten: Σ max(permisos de la orden, 1).
func CountRows(employees []entity.Employee) int {
	return countRows(employees)
}

func countRows(employees []entity.Employee) int {
	n := 0
	for i := range employees {
		for _, po := range employees[i].PurchaseOrders {
			n += max(len(po.AccessPermissions), 1)
		}
	}
	return n
}

func appendEmployee(rows []entity.Row, e *entity.Employee, today entity.Date) []entity.Row {
	for j := range e.PurchaseOrders {
		po := &e.PurchaseOrders[j]
		base := orderRow(e, po, today)
		if len(po.AccessPermissions) == 0 {
			rows = append(rows, withPermission(base, nil))
			continue
		}
		for k := range po.AccessPermissions {
			rows = append(rows, withPermission(base, &po.AccessPermissions[k]))
		}
	}
	return rows
}

func orderRow(e *entity.Employee, po *entity.PurchaseOrder, today entity.Date) entity.Row {
	r := entity.Row{
		FiscalCode:                   e.FiscalCode,
		FirstName:                    e.FirstName,
		LastName:                     e.LastName,
		ContractValidityStartDate:    e.ContractValidityStartDate,
		ContractValidityEndDate:      e.ContractValidityEndDate,
		PONumber:                     po.PONumber,
		Description:                  po.Description,
		IssueDate:                    po.IssueDate,
		PurchaseOrderValidityEndDate: po.ValidityEndDate,
		Duvri:                        po.Duvri,
		Locations:                    append([]string{}, po.Locations...),
	}
	if r.PurchaseOrderValidityEndDate.IsZero() {
		r.PurchaseOrderValidityEndDate = today
	}
	if po.Requester != nil {
		r.RequesterFirstName = po.Requester.FirstName
		r.RequesterLastName = po.Requester.LastName
		r.RequesterEmail = po.Requester.Email
	}
	if po.Subapalto != nil {
		r.SubapaltoNumber = po.Subapalto.Number
		r.SubapaltoStatus = po.Subapalto.Status
	}
	return r
}

// withPermission completa la fila con ap; ap nil deja la fila de relleno.
func withPermission(r entity.Row, ap *entity.AccessPermission) entity.Row {
	r.AccessPermissionValidityEndDate = entity.Epoch
	r.Gates = []int{}
	if ap != nil {
		r.ProtocolNumber = ap.ProtocolNumber
		r.Plant = ap.Plant
		r.Status = ap.Status
		r.Address = ap.Address
		r.Gates = append(r.Gates, ap.Gates...)
		if !ap.ValidityEndDate.IsZero() {
			r.AccessPermissionValidityEndDate = ap.ValidityEndDate
		}
	}
	r.Locations = append([]string{}, r.Locations...)
	r.Key = r.FiscalCode + "/" + r.PONumber + "/" + r.ProtocolNumber + "/" + r.Plant
	return r
}

// PurchaseOrdersByFiscalCode códigos fiscales en orden de llegada y, por cada uno,
// los números de orden asignados. Alimenta el formulario "Add Access Permission".
func PurchaseOrdersByFiscalCode(employees []entity.Employee) ([]string, map[string][]string) {
	codes := make([]string, 0, len(employees))
	byCode := make(map[string][]string, len(employees))
	for i := range employees {
		e := &employees[i]
		poNumbers := make([]string, 0, len(e.PurchaseOrders))
		for _, po := range e.PurchaseOrders {
			poNumbers = append(poNumbers, po.PONumber)
		}
		if _, seen := byCode[e.FiscalCode]; !seen {
			codes = append(codes, e.FiscalCode)
		}
		byCode[e.FiscalCode] = poNumbers
	}
	return codes, byCode
}
