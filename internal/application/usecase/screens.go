// Package usecase pantallas de formulario de la consola: cada caso de uso valida la
// entrada, arma el cuerpo (o el patch) y llama al backend. Ninguno llama al backend
// si la validación falla o si no hay cambios.
package usecase

// Screen pantalla de la consola: nombre para su notificación y mensaje de respaldo
// cuando el backend no devuelve detail. Public marca las pantallas sin sesión.
type Screen struct {
	Name     string
	Fallback string
	Public   bool
}

// Pantallas de la consola. Fallback vacío usa notify.DefaultFallback.
var (
	ScreenLogin                = Screen{Name: "login", Fallback: "Error loggin in", Public: true}
	ScreenRegister             = Screen{Name: "register", Public: true}
	ScreenAddUser              = Screen{Name: "add_user"}
	ScreenEditInfo             = Screen{Name: "edit_info", Fallback: "Error updating data"}
	ScreenDeleteUser           = Screen{Name: "delete_user", Fallback: "Error deleting User"}
	ScreenDashboard            = Screen{Name: "dashboard", Fallback: "Error on fetching users"}
	ScreenAddPurchaseOrder     = Screen{Name: "add_purchase_order", Fallback: "Error creating purchase order"}
	ScreenEditPurchaseOrder    = Screen{Name: "edit_purchase_order", Fallback: "Error Updating Purchase Order"}
	ScreenAddUserToPO          = Screen{Name: "add_user_to_po"}
	ScreenDeletePurchaseOrder  = Screen{Name: "delete_purchase_order", Fallback: "Error deleting Purchase Order"}
	ScreenAddAccessPermission  = Screen{Name: "add_access_permission", Fallback: "Error creating access permission"}
	ScreenEditAccessPermission = Screen{Name: "edit_access_permission", Fallback: "Error Updating Access Permission"}
)

// Screens todas las pantallas, por nombre.
var Screens = map[string]Screen{}

func init() {
	for _, s := range []Screen{
		ScreenLogin, ScreenRegister, ScreenAddUser, ScreenEditInfo, ScreenDeleteUser,
		ScreenDashboard, ScreenAddPurchaseOrder, ScreenEditPurchaseOrder, ScreenAddUserToPO,
		ScreenDeletePurchaseOrder, ScreenAddAccessPermission, ScreenEditAccessPermission,
	} {
		Screens[s.Name] = s
	}
}

// LoginSuccessMessage mensaje de éxito del login (el backend no envía "message").
const LoginSuccessMessage = "Login Successful"
