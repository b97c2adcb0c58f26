package patch_test

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/patch"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

func toMap(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func apForm() dto.AccessPermissionForm {
	return dto.AccessPermissionForm{
		ProtocolNumber:                  "AP1",
		Plant:                           "Plant A",
		Status:                          "Active",
		AccessPermissionValidityEndDate: "2025-12-31",
		Address:                         "Via Roma 1",
		Gates:                           []int{1, 3},
	}
}

// ─── Dirty ───────────────────────────────────────────────────────────────────

func TestParseDirty_CampoDesconocido(t *testing.T) {
	_, err := patch.ParseDirty([]string{"status", "salary"}, patch.APFields)
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "dirty", verr.Fields[0].Field)
}

func TestParseDirty_Duplicados(t *testing.T) {
	d, err := patch.ParseDirty([]string{"status", "status", "plant"}, patch.APFields)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []patch.APField{patch.APPlant, patch.APStatus}, d.Fields())
}

// ─── Access permission ───────────────────────────────────────────────────────

func TestBuildAccessPermission_SinCambios(t *testing.T) {
	_, err := patch.BuildAccessPermission(apForm(), patch.NewDirty[patch.APField]())
	assert.ErrorIs(t, err, domain.ErrNoChanges)
}

func TestBuildAccessPermission_SoloStatus(t *testing.T) {
	p, err := patch.BuildAccessPermission(apForm(), patch.NewDirty(patch.APStatus))
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Active"}`, string(b))
}

func TestBuildAccessPermission_RenombraVigenciaSiEstaModificada(t *testing.T) {
	p, err := patch.BuildAccessPermission(apForm(), patch.NewDirty(patch.APValidityEndDate, patch.APPlant))
	require.NoError(t, err)

	m := toMap(t, p)
	assert.Equal(t, []string{"plant", "validity_end_date"}, keys(m))
	assert.Equal(t, "2025-12-31", m["validity_end_date"])
	assert.NotContains(t, m, "access_permission_validity_end_date")

	p, err = patch.BuildAccessPermission(apForm(), patch.NewDirty(patch.APPlant))
	require.NoError(t, err)
	assert.NotContains(t, toMap(t, p), "validity_end_date")
}

// Las claves del patch son exactamente los campos modificados (con el renombre) y los
// valores son los del formulario, para todos los subconjuntos de campos.
func TestBuildAccessPermission_ClavesIgualesAModificados(t *testing.T) {
	form := apForm()
	formMap := toMap(t, form)
	wire := func(f patch.APField) string {
		if f == patch.APValidityEndDate {
			return "validity_end_date"
		}
		return string(f)
	}

	n := len(patch.APFields)
	for mask := 1; mask < 1<<n; mask++ {
		var fields []patch.APField
		for i, f := range patch.APFields {
			if mask&(1<<i) != 0 {
				fields = append(fields, f)
			}
		}

		p, err := patch.BuildAccessPermission(form, patch.NewDirty(fields...))
		require.NoError(t, err)
		m := toMap(t, p)

		want := make([]string, 0, len(fields))
		for _, f := range fields {
			want = append(want, wire(f))
			assert.Equal(t, formMap[string(f)], m[wire(f)], "campo %s", f)
		}
		sort.Strings(want)
		assert.Equal(t, want, keys(m), "mask=%b", mask)
	}
}

func TestBuildAccessPermission_GatesVaciasViajan(t *testing.T) {
	form := apForm()
	form.Gates = nil

	p, err := patch.BuildAccessPermission(form, patch.NewDirty(patch.APGates))
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"gates":[]}`, string(b))
}

// ─── Purchase order ──────────────────────────────────────────────────────────

func poForm() dto.PurchaseOrderForm {
	return dto.PurchaseOrderForm{
		PONumber:                     "PO1",
		Description:                  "Manutenzione impianti",
		IssueDate:                    "2025-03-10",
		PurchaseOrderValidityEndDate: "2025-12-31",
		Duvri:                        true,
		Locations:                    []string{"Milano", "Torino"},
		RequesterFirstName:           "Anna",
		RequesterLastName:            "Bianchi",
		RequesterEmail:               "anna.bianchi@micla.info",
		SubapaltoNumber:              "S-77",
		SubapaltoStatus:              "Requested",
	}
}

func TestBuildPurchaseOrder_SinCambios(t *testing.T) {
	_, err := patch.BuildPurchaseOrder(poForm(), patch.NewDirty[patch.POField]())
	assert.ErrorIs(t, err, domain.ErrNoChanges)
}

func TestBuildPurchaseOrder_ReanidaSolicitanteYSubapalto(t *testing.T) {
	p, err := patch.BuildPurchaseOrder(poForm(),
		patch.NewDirty(patch.PORequesterFirstName, patch.POSubapaltoNumber, patch.PODescription))
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"description": "Manutenzione impianti",
		"requester": {"first_name": "Anna"},
		"subapalto": {"subapalto_number": "S-77"}
	}`, string(b))
}

func TestBuildPurchaseOrder_NoEnviaObjetosAnidadosVacios(t *testing.T) {
	p, err := patch.BuildPurchaseOrder(poForm(), patch.NewDirty(patch.PODuvri))
	require.NoError(t, err)

	m := toMap(t, p)
	assert.Equal(t, []string{"duvri"}, keys(m))
	assert.Equal(t, true, m["duvri"])
}

func TestBuildPurchaseOrder_VigenciaYFechas(t *testing.T) {
	p, err := patch.BuildPurchaseOrder(poForm(), patch.NewDirty(patch.POValidityEndDate, patch.POIssueDate))
	require.NoError(t, err)

	m := toMap(t, p)
	assert.Equal(t, "2025-12-31", m["validity_end_date"])
	assert.Equal(t, "2025-03-10", m["issue_date"])
	assert.NotContains(t, m, "purchase_order_validity_end_date")
}

func TestBuildPurchaseOrder_SoloVaciosEsSinCambios(t *testing.T) {
	form := poForm()
	form.Locations = nil
	form.IssueDate = ""

	_, err := patch.BuildPurchaseOrder(form, patch.NewDirty(patch.POLocations, patch.POIssueDate))
	assert.ErrorIs(t, err, domain.ErrNoChanges)
}

func TestPurchaseOrderFromRow(t *testing.T) {
	row := entity.Row{
		FiscalCode:                   "ABCDEF12A34B567C",
		PONumber:                     "PO1",
		Description:                  "Manutenzione",
		IssueDate:                    entity.NewDate(2025, time.March, 10),
		PurchaseOrderValidityEndDate: entity.NewDate(2025, time.December, 31),
		Locations:                    []string{"Milano"},
		RequesterEmail:               "anna@micla.info",
		ProtocolNumber:               "AP1",
	}

	po := patch.PurchaseOrderFromRow(row)

	assert.Equal(t, "PO1", po.PONumber)
	assert.Equal(t, "2025-12-31", po.ValidityEndDate.String())
	require.NotNil(t, po.Requester)
	assert.Equal(t, "anna@micla.info", po.Requester.Email)
	assert.Nil(t, po.Subapalto)
	assert.NotNil(t, po.AccessPermissions)
	assert.Empty(t, po.AccessPermissions)

	m := toMap(t, po)
	assert.Equal(t, []any{}, m["access_permission"])
	assert.NotContains(t, m, "subapalto")
}

// ─── Employee ────────────────────────────────────────────────────────────────

func TestBuildEmployee_SinCambiosNiArchivos(t *testing.T) {
	_, err := patch.BuildEmployee(dto.EmployeeForm{}, patch.NewDirty[patch.EmployeeField](), nil)
	assert.ErrorIs(t, err, domain.ErrNoChanges)
}

func TestBuildEmployee_SoloArchivoCuentaComoCambio(t *testing.T) {
	files := map[string]entity.Upload{
		entity.DocumentVisa: {Filename: "visa.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	}
	p, err := patch.BuildEmployee(dto.EmployeeForm{}, patch.NewDirty[patch.EmployeeField](), files)
	require.NoError(t, err)

	fields, err := p.FormFields()
	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.Contains(t, p.Files, entity.DocumentVisa)
}

func TestBuildEmployee_ArchivoDesconocido(t *testing.T) {
	files := map[string]entity.Upload{"payslip": {Filename: "x.pdf"}}
	_, err := patch.BuildEmployee(dto.EmployeeForm{}, patch.NewDirty[patch.EmployeeField](), files)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildEmployee_CredencialesEnUnaParteJSON(t *testing.T) {
	form := dto.EmployeeForm{
		FirstName:     "Mario",
		IDCardEndDate: "2030-01-01",
		UserName:      "mrossi",
		Email:         "mario@micla.info",
		Password:      "nuevo-pass",
	}
	p, err := patch.BuildEmployee(form,
		patch.NewDirty(patch.EmpFirstName, patch.EmpIDCardEndDate, patch.EmpEmail), nil)
	require.NoError(t, err)

	fields, err := p.FormFields()
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, patch.FormField{Name: "first_name", Value: "Mario"}, fields[0])
	assert.Equal(t, patch.FormField{Name: "id_card_end_date", Value: "2030-01-01"}, fields[1])
	assert.Equal(t, "user_credentials", fields[2].Name)
	assert.JSONEq(t, `{"email":"mario@micla.info"}`, fields[2].Value)
}
