package ports

import (
	"context"

	"github.com/micla/access-console/internal/application/patch"
	"github.com/micla/access-console/internal/domain/entity"
)

// Puertos de salida hacia el backend REST (sistema de registro).
// Las mutaciones devuelven el mensaje de éxito del backend ({"message": ...}).
// Un token vacío significa llamada sin cabecera Authorization.

// AuthGateway autenticación contra el backend.
type AuthGateway interface {
	// Login envía usuario y contraseña (form-urlencoded) y devuelve el token y sus claims.
	Login(ctx context.Context, username, password string) (*entity.LoginResult, error)
}

// EmployeeGateway operaciones sobre empleados y sus documentos.
type EmployeeGateway interface {
	ListEmployees(ctx context.Context, token string) ([]entity.Employee, error)
	MyInfo(ctx context.Context, token string) (*entity.Employee, error)
	// CreateEmployee multipart con los campos del alta y los documentos adjuntos.
	CreateEmployee(ctx context.Context, token string, fields []patch.FormField, files map[string]entity.Upload) (string, error)
	UpdateEmployee(ctx context.Context, token, fiscalCode string, p patch.EmployeePatch) (string, error)
	DeleteEmployee(ctx context.Context, token, fiscalCode string) (string, error)
	DownloadDocument(ctx context.Context, token, fiscalCode, field string) (*entity.Document, error)
	ProfileImage(ctx context.Context, token, fiscalCode string) (*entity.Document, error)
}

// PurchaseOrderGateway operaciones sobre órdenes de compra.
type PurchaseOrderGateway interface {
	CreatePurchaseOrder(ctx context.Context, token string, fiscalCodes []string, po entity.PurchaseOrder) (string, error)
	// AttachPurchaseOrder asigna una orden existente (copiada completa) a otro empleado.
	AttachPurchaseOrder(ctx context.Context, token, fiscalCode string, po entity.PurchaseOrder) (string, error)
	UpdatePurchaseOrder(ctx context.Context, token, poNumber string, p patch.PurchaseOrderPatch) (string, error)
	DeletePurchaseOrder(ctx context.Context, token, poNumber string) (string, error)
}

// AccessPermissionGateway operaciones sobre permisos de acceso.
type AccessPermissionGateway interface {
	// InsertAccessPermission agrega el permiso a cada orden de poNumbers del empleado.
	InsertAccessPermission(ctx context.Context, token, fiscalCode string, poNumbers []string, ap entity.AccessPermission) (string, error)
	UpdateAccessPermission(ctx context.Context, token, poNumber, protocolNumber string, p patch.AccessPermissionPatch) (string, error)
}

// Backend agrupa todos los puertos; lo implementa el cliente HTTP.
type Backend interface {
	AuthGateway
	EmployeeGateway
	PurchaseOrderGateway
	AccessPermissionGateway
}
