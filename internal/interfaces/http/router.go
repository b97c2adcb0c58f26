package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/guard"
	"github.com/micla/access-console/internal/application/notify"
	"github.com/micla/access-console/internal/application/session"
	"github.com/micla/access-console/internal/application/usecase"
	"github.com/micla/access-console/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC             *usecase.AuthUseCase
	EmployeeUC         *usecase.EmployeeUseCase
	DashboardUC        *usecase.DashboardUseCase
	PurchaseOrderUC    *usecase.PurchaseOrderUseCase
	AccessPermissionUC *usecase.AccessPermissionUseCase
	Sessions           *session.Service
	Board              *notify.Board
	Cookie             CookieConfig
	LoginRatePerMin    int // 0 = sin límite
	Log                *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	r := &responder{board: deps.Board, sessions: deps.Sessions, cookie: deps.Cookie, log: log.Named("http")}

	authHandler := NewAuthHandler(deps.AuthUC, r)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, r)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, r)
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, r)
	apHandler := NewAccessPermissionHandler(deps.AccessPermissionUC, r)

	api := app.Group("/api", SessionMiddleware(deps.Sessions, deps.Cookie, log))

	// Público
	loginChain := []fiber.Handler{}
	if deps.LoginRatePerMin > 0 {
		loginChain = append(loginChain, limiter.New(limiter.Config{
			Max:        deps.LoginRatePerMin,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code: "RATE_LIMITED", Message: "demasiados intentos de login",
				})
			},
		}))
	}
	api.Post("/login", append(loginChain, authHandler.Login)...)
	api.Post("/logout", authHandler.Logout)
	api.Post("/register", employeeHandler.Register)

	// Cualquier rol
	anyRole := RequireRoles(deps.Sessions, deps.Cookie, guard.AnyRole...)
	noticeHandler := NewNoticeHandler(r, anyRole)
	api.Get("/session", anyRole, authHandler.Session)
	api.Get("/me", anyRole, employeeHandler.Me)
	api.Get("/me/form", anyRole, employeeHandler.Form)
	api.Patch("/me", anyRole, employeeHandler.UpdateMe)
	api.Get("/employees/:fc/documents/:field", anyRole, employeeHandler.Document)
	api.Get("/employees/:fc/avatar", anyRole, employeeHandler.Avatar)
	api.Get("/notices/:screen", noticeHandler.Guard, noticeHandler.Get)

	// Administrador
	admin := api.Group("/admin", RequireRoles(deps.Sessions, deps.Cookie, guard.AdminOnly...))
	admin.Get("/rows", dashboardHandler.Rows)
	admin.Get("/rows/export", dashboardHandler.Export)
	admin.Get("/fiscal-codes", dashboardHandler.FiscalCodes)

	admin.Post("/employees", employeeHandler.AddUser)
	admin.Delete("/employees/:fc", employeeHandler.Delete)

	admin.Post("/purchase-orders", poHandler.Create)
	admin.Patch("/purchase-orders/:po", poHandler.Update)
	admin.Post("/purchase-orders/:po/employees", poHandler.AttachEmployee)
	admin.Delete("/purchase-orders/:po", poHandler.Delete)

	admin.Post("/access-permissions", apHandler.Create)
	admin.Patch("/access-permissions/:po/:protocol", apHandler.Update)
}
