package patch

import (
	"encoding/json"
	"fmt"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

// EmployeeField campo editable del formulario de datos propios.
type EmployeeField string

const (
	EmpFirstName                 EmployeeField = "first_name"
	EmpLastName                  EmployeeField = "last_name"
	EmpBirthDate                 EmployeeField = "birth_date"
	EmpIDCardEndDate             EmployeeField = "id_card_end_date"
	EmpContractType              EmployeeField = "contract_type"
	EmpContractValidityStartDate EmployeeField = "contract_validity_start_date"
	EmpContractValidityEndDate   EmployeeField = "contract_validity_end_date"
	EmpVisaStartDate             EmployeeField = "visa_start_date"
	EmpVisaEndDate               EmployeeField = "visa_end_date"
	EmpUserName                  EmployeeField = "user_name"
	EmpEmail                     EmployeeField = "email"
	EmpPassword                  EmployeeField = "password"
)

// EmployeeFields todos los campos editables de un empleado.
var EmployeeFields = []EmployeeField{
	EmpFirstName, EmpLastName, EmpBirthDate, EmpIDCardEndDate, EmpContractType,
	EmpContractValidityStartDate, EmpContractValidityEndDate, EmpVisaStartDate, EmpVisaEndDate,
	EmpUserName, EmpEmail, EmpPassword,
}

// FormField parte de texto de un cuerpo multipart.
type FormField struct {
	Name  string
	Value string
}

// EmployeePatch cuerpo multipart de PATCH /update/{fiscal_code}.
type EmployeePatch struct {
	FirstName                 *string
	LastName                  *string
	BirthDate                 *entity.Date
	IDCardEndDate             *entity.Date
	ContractType              *string
	ContractValidityStartDate *entity.Date
	ContractValidityEndDate   *entity.Date
	VisaStartDate             *entity.Date
	VisaEndDate               *entity.Date
	UserCredentials           *entity.UserCredentials
	Files                     map[string]entity.Upload
}

// FormFields partes de texto en orden estable. Las credenciales van en una sola parte
// user_credentials codificada como JSON.
func (p EmployeePatch) FormFields() ([]FormField, error) {
	var out []FormField
	addStr := func(name string, v *string) {
		if v != nil {
			out = append(out, FormField{Name: name, Value: *v})
		}
	}
	addDate := func(name string, v *entity.Date) {
		if v != nil {
			out = append(out, FormField{Name: name, Value: v.String()})
		}
	}
	addStr(string(EmpFirstName), p.FirstName)
	addStr(string(EmpLastName), p.LastName)
	addDate(string(EmpBirthDate), p.BirthDate)
	addDate(string(EmpIDCardEndDate), p.IDCardEndDate)
	addStr(string(EmpContractType), p.ContractType)
	addDate(string(EmpContractValidityStartDate), p.ContractValidityStartDate)
	addDate(string(EmpContractValidityEndDate), p.ContractValidityEndDate)
	addDate(string(EmpVisaStartDate), p.VisaStartDate)
	addDate(string(EmpVisaEndDate), p.VisaEndDate)
	if p.UserCredentials != nil {
		b, err := json.Marshal(p.UserCredentials)
		if err != nil {
			return nil, fmt.Errorf("patch: user_credentials: %w", err)
		}
		out = append(out, FormField{Name: "user_credentials", Value: string(b)})
	}
	return out, nil
}

// BuildEmployee patch con los campos modificados de v y los archivos nuevos.
// Los archivos cuentan como cambio; sin campos ni archivos devuelve domain.ErrNoChanges.
// Las fechas vacías no viajan: el backend no admite borrar una fecha.
func BuildEmployee(v dto.EmployeeForm, dirty Dirty[EmployeeField], files map[string]entity.Upload) (EmployeePatch, error) {
	var p EmployeePatch
	if dirty.Empty() && len(files) == 0 {
		return p, domain.ErrNoChanges
	}
	var creds entity.UserCredentials
	hasCreds := false
	for _, f := range dirty.Fields() {
		var err error
		switch f {
		case EmpFirstName:
			p.FirstName = ptr(v.FirstName)
		case EmpLastName:
			p.LastName = ptr(v.LastName)
		case EmpBirthDate:
			p.BirthDate, err = optionalDate(string(f), v.BirthDate)
		case EmpIDCardEndDate:
			p.IDCardEndDate, err = optionalDate(string(f), v.IDCardEndDate)
		case EmpContractType:
			p.ContractType = ptr(v.ContractType)
		case EmpContractValidityStartDate:
			p.ContractValidityStartDate, err = optionalDate(string(f), v.ContractValidityStartDate)
		case EmpContractValidityEndDate:
			p.ContractValidityEndDate, err = optionalDate(string(f), v.ContractValidityEndDate)
		case EmpVisaStartDate:
			p.VisaStartDate, err = optionalDate(string(f), v.VisaStartDate)
		case EmpVisaEndDate:
			p.VisaEndDate, err = optionalDate(string(f), v.VisaEndDate)
		case EmpUserName:
			creds.UserName, hasCreds = v.UserName, true
		case EmpEmail:
			creds.Email, hasCreds = v.Email, true
		case EmpPassword:
			creds.Password, hasCreds = v.Password, true
		}
		if err != nil {
			return EmployeePatch{}, err
		}
	}
	if hasCreds {
		p.UserCredentials = &creds
	}
	if len(files) > 0 {
		p.Files = make(map[string]entity.Upload, len(files))
		for name, up := range files {
			if !entity.IsDocumentField(name) {
				return EmployeePatch{}, domain.NewValidationError(name, "Unknown document field")
			}
			p.Files[name] = up
		}
	}
	if p.IsEmpty() {
		return EmployeePatch{}, domain.ErrNoChanges
	}
	return p, nil
}

// IsEmpty indica que no hay ni campos ni archivos que enviar.
func (p EmployeePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.BirthDate == nil && p.IDCardEndDate == nil &&
		p.ContractType == nil && p.ContractValidityStartDate == nil && p.ContractValidityEndDate == nil &&
		p.VisaStartDate == nil && p.VisaEndDate == nil && p.UserCredentials == nil && len(p.Files) == 0
}
