package usecase

import (
	"context"
	"errors"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/grid"
	"github.com/micla/access-console/internal/application/patch"
	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/application/validation"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

// requiredDocuments documentos obligatorios en el alta; la visa es opcional.
var requiredDocuments = []string{entity.DocumentProfileImage, entity.DocumentIDCard, entity.DocumentUnilav}

// EmployeeUseCase alta, edición, borrado y consulta de empleados.
type EmployeeUseCase struct {
	gw        ports.EmployeeGateway
	validate  *validation.Validator
	flattener *grid.Flattener
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(gw ports.EmployeeGateway, v *validation.Validator, f *grid.Flattener) *EmployeeUseCase {
	return &EmployeeUseCase{gw: gw, validate: v, flattener: f}
}

// Register da de alta un empleado con sus documentos. token vacío para el registro público.
func (uc *EmployeeUseCase) Register(ctx context.Context, token string, form dto.RegisterEmployeeForm, files map[string]entity.Upload) (string, error) {
	var fields []domain.FieldError
	if err := uc.validate.Struct(form); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return "", err
		}
		fields = append(fields, verr.Fields...)
	}
	for _, name := range requiredDocuments {
		if up, ok := files[name]; !ok || len(up.Data) == 0 {
			fields = append(fields, domain.FieldError{Field: name, Message: "Required"})
		}
	}
	for name := range files {
		if !entity.IsDocumentField(name) {
			fields = append(fields, domain.FieldError{Field: name, Message: "Unknown document field"})
		}
	}
	if len(fields) > 0 {
		return "", &domain.ValidationError{Fields: fields}
	}
	return uc.gw.CreateEmployee(ctx, token, registerFields(form), files)
}

// registerFields partes de texto del alta en el orden que espera el backend.
func registerFields(f dto.RegisterEmployeeForm) []patch.FormField {
	fields := []patch.FormField{
		{Name: "first_name", Value: f.FirstName},
		{Name: "last_name", Value: f.LastName},
		{Name: "user_name", Value: f.UserName},
		{Name: "fiscal_code", Value: f.FiscalCode},
		{Name: "birth_date", Value: f.BirthDate},
		{Name: "id_card_end_date", Value: f.IDCardEndDate},
		{Name: "contract_type", Value: f.ContractType},
		{Name: "contract_validity_start_date", Value: f.ContractValidityStartDate},
		{Name: "contract_validity_end_date", Value: f.ContractValidityEndDate},
	}
	if f.VisaStartDate != "" {
		fields = append(fields, patch.FormField{Name: "visa_start_date", Value: f.VisaStartDate})
	}
	if f.VisaEndDate != "" {
		fields = append(fields, patch.FormField{Name: "visa_end_date", Value: f.VisaEndDate})
	}
	return append(fields,
		patch.FormField{Name: "email", Value: f.Email},
		patch.FormField{Name: "password", Value: f.Password},
	)
}

// Update envía solo los campos modificados del formulario de datos propios y los
// documentos nuevos. Sin cambios devuelve domain.ErrNoChanges sin llamar al backend.
func (uc *EmployeeUseCase) Update(ctx context.Context, token, fiscalCode string, form dto.EmployeeForm, dirtyNames []string, files map[string]entity.Upload) (string, error) {
	dirty, err := patch.ParseDirty(dirtyNames, patch.EmployeeFields)
	if err != nil {
		return "", err
	}
	if err := uc.validate.Struct(form); err != nil {
		return "", err
	}
	p, err := patch.BuildEmployee(form, dirty, files)
	if err != nil {
		return "", err
	}
	return uc.gw.UpdateEmployee(ctx, token, fiscalCode, p)
}

// Delete borra el empleado fiscalCode.
func (uc *EmployeeUseCase) Delete(ctx context.Context, token, fiscalCode string) (string, error) {
	if err := uc.validate.Var("fiscal_code", fiscalCode, "required,fiscalcode"); err != nil {
		return "", err
	}
	return uc.gw.DeleteEmployee(ctx, token, fiscalCode)
}

// MyInfo el empleado dueño de la sesión y sus órdenes aplanadas.
func (uc *EmployeeUseCase) MyInfo(ctx context.Context, token string) (*dto.ProfileResponse, error) {
	e, err := uc.gw.MyInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{Employee: *e, Rows: uc.flattener.FlattenOrders(e)}, nil
}

// Form formulario de edición precargado con los datos actuales.
func (uc *EmployeeUseCase) Form(ctx context.Context, token string) (*dto.EmployeeForm, error) {
	e, err := uc.gw.MyInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	form := dto.EmployeeFormFromEntity(e)
	return &form, nil
}

// Document descarga un documento. Un usuario no administrador solo accede a los suyos.
func (uc *EmployeeUseCase) Document(ctx context.Context, s *entity.Session, fiscalCode, field string) (*entity.Document, error) {
	if !entity.IsDocumentField(field) {
		return nil, domain.NewValidationError("field", "Unknown document field")
	}
	if err := canAccess(s, fiscalCode); err != nil {
		return nil, err
	}
	return uc.gw.DownloadDocument(ctx, s.AccessToken, fiscalCode, field)
}

// Avatar imagen de perfil del empleado.
func (uc *EmployeeUseCase) Avatar(ctx context.Context, s *entity.Session, fiscalCode string) (*entity.Document, error) {
	if err := canAccess(s, fiscalCode); err != nil {
		return nil, err
	}
	return uc.gw.ProfileImage(ctx, s.AccessToken, fiscalCode)
}

func canAccess(s *entity.Session, fiscalCode string) error {
	if s == nil {
		return domain.ErrUnauthorized
	}
	if s.UserType != entity.RoleAdmin && s.FiscalCode != fiscalCode {
		return domain.ErrForbidden
	}
	return nil
}
