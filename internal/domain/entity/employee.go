package entity

// Roles válidos (claim "ut" del token del backend).
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Campos de documento adjunto de un empleado.
const (
	DocumentProfileImage = "profile_image"
	DocumentIDCard       = "id_card"
	DocumentVisa         = "visa"
	DocumentUnilav       = "unilav"
)

// DocumentFields lista de documentos que acepta el backend, en el orden del formulario.
var DocumentFields = []string{DocumentProfileImage, DocumentIDCard, DocumentVisa, DocumentUnilav}

// IsDocumentField indica si name es un campo de documento conocido.
func IsDocumentField(name string) bool {
	for _, f := range DocumentFields {
		if f == name {
			return true
		}
	}
	return false
}

// UserCredentials credenciales embebidas en el empleado.
type UserCredentials struct {
	UserName string `json:"user_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	UserType string `json:"user_type,omitempty"`
}

// Employee empleado o contratista tal como lo expone el backend.
// FiscalCode es la clave natural.
type Employee struct {
	FirstName                 string          `json:"first_name"`
	LastName                  string          `json:"last_name"`
	FiscalCode                string          `json:"fiscal_code"`
	BirthDate                 Date            `json:"birth_date"`
	IDCardEndDate             Date            `json:"id_card_end_date"`
	ContractType              string          `json:"contract_type"`
	ContractValidityStartDate Date            `json:"contract_validity_start_date"`
	ContractValidityEndDate   Date            `json:"contract_validity_end_date"`
	VisaStartDate             Date            `json:"visa_start_date"`
	VisaEndDate               Date            `json:"visa_end_date"`
	UserCredentials           UserCredentials `json:"user_credentials"`
	PurchaseOrders            []PurchaseOrder `json:"purchase_order"`
	ProfileImagePath          string          `json:"profile_image_path,omitempty"`
	IDCardPath                string          `json:"id_card_path,omitempty"`
	VisaPath                  string          `json:"visa_path,omitempty"`
	UnilavPath                string          `json:"unilav_path,omitempty"`
}

// Document archivo binario descargado del backend.
type Document struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Upload archivo que el usuario adjunta en un formulario multipart.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
