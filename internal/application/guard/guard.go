// Package guard decide si una sesión puede entrar a una ruta protegida.
package guard

import (
	"slices"
	"time"

	"github.com/micla/access-console/internal/domain/entity"
)

// Decision resultado de evaluar una ruta protegida.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

// Destinos de las redirecciones.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Conjuntos de roles de las rutas de la consola.
var (
	// AnyRole home, perfil propio y edición de datos propios.
	AnyRole = []string{entity.RoleAdmin, entity.RoleUser}
	// AdminOnly dashboard, alta de usuarios, órdenes, permisos y borrados.
	AdminOnly = []string{entity.RoleAdmin}
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// Redirect ruta a la que redirigir; vacía en Allow.
func (d Decision) Redirect() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectUnauthorized:
		return UnauthorizedPath
	default:
		return ""
	}
}

// Evaluate sin sesión, sin token o con el token vencido -> RedirectLogin (el llamador
// descarta la sesión). Con rol fuera de allowed -> RedirectUnauthorized. Si no, Allow.
// Un token que vence exactamente en now todavía es válido.
func Evaluate(s *entity.Session, allowed []string, now time.Time) Decision {
	if s == nil || s.AccessToken == "" || s.Expired(now) {
		return RedirectLogin
	}
	if !slices.Contains(allowed, s.UserType) {
		return RedirectUnauthorized
	}
	return Allow
}
