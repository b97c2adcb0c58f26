package dto

import "github.com/micla/access-console/internal/domain/entity"

// RegisterEmployeeForm alta de empleado (registro público o "Add User" del administrador).
// Las fechas viajan como "YYYY-MM-DD".
type RegisterEmployeeForm struct {
	FirstName                 string `json:"first_name" form:"first_name" validate:"required,min=2,max=20"`
	LastName                  string `json:"last_name" form:"last_name" validate:"required,min=2,max=20"`
	UserName                  string `json:"user_name" form:"user_name" validate:"required"`
	FiscalCode                string `json:"fiscal_code" form:"fiscal_code" validate:"required,fiscalcode"`
	BirthDate                 string `json:"birth_date" form:"birth_date" validate:"required,isodate,adult"`
	IDCardEndDate             string `json:"id_card_end_date" form:"id_card_end_date" validate:"required,isodate,future"`
	ContractType              string `json:"contract_type" form:"contract_type" validate:"required"`
	ContractValidityStartDate string `json:"contract_validity_start_date" form:"contract_validity_start_date" validate:"required,isodate,future"`
	ContractValidityEndDate   string `json:"contract_validity_end_date" form:"contract_validity_end_date" validate:"required,isodate"`
	VisaStartDate             string `json:"visa_start_date" form:"visa_start_date" validate:"omitempty,isodate"`
	VisaEndDate               string `json:"visa_end_date" form:"visa_end_date" validate:"omitempty,isodate"`
	Email                     string `json:"email" form:"email" validate:"required,miclaemail"`
	Password                  string `json:"password" form:"password" validate:"required,min=6"`
}

// EmployeeForm valores completos del formulario de edición de datos propios.
// Todos los campos son opcionales; solo se envían los marcados como modificados.
type EmployeeForm struct {
	FirstName                 string `json:"first_name" form:"first_name" validate:"omitempty,min=2,max=20"`
	LastName                  string `json:"last_name" form:"last_name" validate:"omitempty,min=2,max=20"`
	BirthDate                 string `json:"birth_date" form:"birth_date" validate:"omitempty,isodate,adult"`
	IDCardEndDate             string `json:"id_card_end_date" form:"id_card_end_date" validate:"omitempty,isodate,future"`
	ContractType              string `json:"contract_type" form:"contract_type"`
	ContractValidityStartDate string `json:"contract_validity_start_date" form:"contract_validity_start_date" validate:"required,isodate"`
	ContractValidityEndDate   string `json:"contract_validity_end_date" form:"contract_validity_end_date" validate:"omitempty,isodate"`
	VisaStartDate             string `json:"visa_start_date" form:"visa_start_date" validate:"omitempty,isodate"`
	VisaEndDate               string `json:"visa_end_date" form:"visa_end_date" validate:"omitempty,isodate"`
	UserName                  string `json:"user_name" form:"user_name"`
	Email                     string `json:"email" form:"email" validate:"omitempty,miclaemail"`
	Password                  string `json:"password" form:"password" validate:"omitempty,min=6"`
}

// EmployeeFormFromEntity precarga el formulario de edición con los datos actuales.
func EmployeeFormFromEntity(e *entity.Employee) EmployeeForm {
	return EmployeeForm{
		FirstName:                 e.FirstName,
		LastName:                  e.LastName,
		BirthDate:                 e.BirthDate.String(),
		IDCardEndDate:             e.IDCardEndDate.String(),
		ContractType:              e.ContractType,
		ContractValidityStartDate: e.ContractValidityStartDate.String(),
		ContractValidityEndDate:   e.ContractValidityEndDate.String(),
		VisaStartDate:             e.VisaStartDate.String(),
		VisaEndDate:               e.VisaEndDate.String(),
		UserName:                  e.UserCredentials.UserName,
		Email:                     e.UserCredentials.Email,
	}
}

// ProfileResponse GET /api/me: el empleado y sus órdenes aplanadas.
type ProfileResponse struct {
	Employee entity.Employee `json:"employee"`
	Rows     []entity.Row    `json:"rows"`
}
