package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/validation"
	"github.com/micla/access-console/internal/domain"
)

// Hoy fijo: 2025-03-10.
func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)
}

func newValidator() *validation.Validator {
	return validation.New(fixedNow)
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba *domain.ValidationError, llegó %v", err)
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func validRegisterForm() dto.RegisterEmployeeForm {
	return dto.RegisterEmployeeForm{
		FirstName:                 "Mario",
		LastName:                  "Rossi",
		UserName:                  "mrossi",
		FiscalCode:                "RSSMRA85T10A562S",
		BirthDate:                 "1985-12-10",
		IDCardEndDate:             "2030-01-01",
		ContractType:              "Full-time",
		ContractValidityStartDate: "2025-04-01",
		ContractValidityEndDate:   "2026-04-01",
		Email:                     "mario.rossi@micla.info",
		Password:                  "secret1",
	}
}

// ─── Fechas ──────────────────────────────────────────────────────────────────

func TestFuture_HoyNoEsValido(t *testing.T) {
	v := newValidator()

	form := dto.AccessPermissionForm{AccessPermissionValidityEndDate: "2025-03-10"}
	fields := fieldsOf(t, v.Struct(form))
	assert.Equal(t, "Validity end date must be greater than today", fields["access_permission_validity_end_date"])

	form.AccessPermissionValidityEndDate = "2025-03-11"
	assert.NoError(t, v.Struct(form))
}

func TestNotPast_HoyEsValido(t *testing.T) {
	v := newValidator()

	form := dto.PurchaseOrderForm{IssueDate: "2025-03-10", PurchaseOrderValidityEndDate: "2025-06-01"}
	assert.NoError(t, v.Struct(form))

	form.IssueDate = "2025-03-09"
	fields := fieldsOf(t, v.Struct(form))
	assert.Equal(t, "Issue date must be greater or equal than today", fields["issue_date"])
}

func TestAdult_CuentaSoloElAnio(t *testing.T) {
	v := newValidator()

	// Nacido en diciembre de 2007: 18 años "por año" aunque aún no los haya cumplido.
	form := validRegisterForm()
	form.BirthDate = "2007-12-31"
	assert.NoError(t, v.Struct(form))

	form.BirthDate = "2008-01-01"
	fields := fieldsOf(t, v.Struct(form))
	assert.Equal(t, "You must be 18 years old", fields["birth_date"])
}

func TestIsoDate_FormatoInvalido(t *testing.T) {
	v := newValidator()

	form := validRegisterForm()
	form.ContractValidityEndDate = "01/04/2026"
	fields := fieldsOf(t, v.Struct(form))
	assert.Contains(t, fields, "contract_validity_end_date")
}

// ─── Reglas de estructura ────────────────────────────────────────────────────

func TestRegister_FinDeContratoPosteriorAlInicio(t *testing.T) {
	v := newValidator()

	form := validRegisterForm()
	require.NoError(t, v.Struct(form))

	form.ContractValidityEndDate = form.ContractValidityStartDate
	fields := fieldsOf(t, v.Struct(form))
	assert.Equal(t, "End date must be greater than the start date", fields["contract_validity_end_date"])
}

func TestRegister_VisaFinRequeridoConInicio(t *testing.T) {
	v := newValidator()

	form := validRegisterForm()
	form.VisaStartDate = "2025-04-01"
	fields := fieldsOf(t, v.Struct(form))
	assert.Equal(t, "Visa end date is required when visa start date is set", fields["visa_end_date"])

	form.VisaEndDate = "2025-03-01"
	fields = fieldsOf(t, v.Struct(form))
	assert.Equal(t, "End date must be greater than the start date", fields["visa_end_date"])

	form.VisaEndDate = "2026-04-01"
	assert.NoError(t, v.Struct(form))
}

func TestRegister_CamposDeFormato(t *testing.T) {
	v := newValidator()

	form := validRegisterForm()
	form.FiscalCode = "rssmra85t10a562s"
	form.Email = "mario@gmail.com"
	form.FirstName = "M"
	form.Password = "123"

	fields := fieldsOf(t, v.Struct(form))
	assert.Equal(t, "Fiscal code format incorrect", fields["fiscal_code"])
	assert.Contains(t, fields, "email")
	assert.Equal(t, "Must be at least 2 characters", fields["first_name"])
	assert.Equal(t, "Must be at least 6 characters", fields["password"])
}

func TestCreatePurchaseOrder_RutasAnidadas(t *testing.T) {
	v := newValidator()

	req := dto.CreatePurchaseOrderRequest{
		FiscalCodes: []string{"RSSMRA85T10A562S", "bad"},
		PurchaseOrder: dto.PurchaseOrderInput{
			PONumber:        "PO1",
			Description:     "Manutenzione",
			Locations:       []string{"Milano"},
			IssueDate:       "2025-03-10",
			ValidityEndDate: "2025-03-01",
			Requester:       dto.RequesterInput{FirstName: "Anna", LastName: "Bianchi", Email: "anna@example.com"},
			Subapalto:       dto.SubapaltoInput{Number: "S1", Status: "Active"},
		},
	}

	fields := fieldsOf(t, v.Struct(req))
	assert.Contains(t, fields, "fiscal_codes[1]")
	assert.Contains(t, fields, "purchase_order.requester.email")
	assert.Equal(t, "Validity end date must be greater than the issue date", fields["purchase_order.validity_end_date"])
}

func TestCreatePurchaseOrder_PermisoOpcional(t *testing.T) {
	v := newValidator()

	req := dto.CreatePurchaseOrderRequest{
		FiscalCodes: []string{"RSSMRA85T10A562S"},
		PurchaseOrder: dto.PurchaseOrderInput{
			PONumber:        "PO1",
			Description:     "Manutenzione",
			Locations:       []string{"Milano"},
			IssueDate:       "2025-03-10",
			ValidityEndDate: "2025-12-31",
			Requester:       dto.RequesterInput{FirstName: "Anna", LastName: "Bianchi", Email: "anna@micla.info"},
			Subapalto:       dto.SubapaltoInput{Number: "S1", Status: "Requested"},
		},
	}
	assert.NoError(t, v.Struct(req))

	req.PurchaseOrder.AccessPermission = &dto.AccessPermissionInput{
		ProtocolNumber: "AP1", Plant: "P1", Status: "Pending", ValidityEndDate: "2025-12-31",
		Address: "Via Roma 1", Gates: []int{1},
	}
	fields := fieldsOf(t, v.Struct(req))
	assert.Equal(t, "Must be one of: Active Requested Rejected", fields["purchase_order.access_permission.status"])
}

func TestVar_CodigoFiscal(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Var("fiscal_code", "RSSMRA85T10A562S", "required,fiscalcode"))

	fields := fieldsOf(t, v.Var("fiscal_code", "ABC", "required,fiscalcode"))
	assert.Equal(t, "Fiscal code format incorrect", fields["fiscal_code"])
}

func TestIsFiscalCode(t *testing.T) {
	cases := map[string]bool{
		"ABCDEF12A34B567C": true,
		"RSSMRA85T10A562S": true,
		"ABCDEF12A34B567":  false,
		"abcdef12a34b567c": false,
		"1BCDEF12A34B567C": false,
		"":                 false,
	}
	for in, want := range cases {
		assert.Equal(t, want, validation.IsFiscalCode(in), in)
	}
}
