package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micla/access-console/internal/application/grid"
	"github.com/micla/access-console/internal/application/notify"
	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/application/session"
	"github.com/micla/access-console/internal/application/usecase"
	"github.com/micla/access-console/internal/application/validation"
	"github.com/micla/access-console/internal/infrastructure/backend"
	"github.com/micla/access-console/internal/infrastructure/export"
	"github.com/micla/access-console/internal/infrastructure/sessionstore"
	httpRouter "github.com/micla/access-console/internal/interfaces/http"
	"github.com/micla/access-console/pkg/config"
	"github.com/micla/access-console/pkg/logger"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Backend.BaseURL).
		Str("session_store", cfg.Session.Store).
		Msg("iniciando consola")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store de sesiones: memoria (un solo proceso) o Redis (varias réplicas)
	var store ports.SessionStore
	switch cfg.Session.Store {
	case "redis":
		rs, err := sessionstore.NewRedis(ctx, sessionstore.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = rs.Close() }()
		store = rs
	default:
		mem := sessionstore.NewMemory(time.Now)
		go mem.RunSweeper(ctx, sweepInterval)
		store = mem
	}

	sessions := session.NewService(store, cfg.Session.TTL, time.Now, log)
	board := notify.NewBoard(cfg.Notice.ResetDelay, log)
	unbind := board.Bind(sessions)
	defer unbind()

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	validate := validation.New(time.Now)
	flattener := grid.NewFlattener(time.Now)

	authUC := usecase.NewAuthUseCase(client, sessions, validate, cfg.JWT.Secret)
	employeeUC := usecase.NewEmployeeUseCase(client, validate, flattener)
	dashboardUC := usecase.NewDashboardUseCase(client, flattener,
		export.NewXLSXExporter(),
		export.NewPDFExporter(time.Now),
	)
	purchaseOrderUC := usecase.NewPurchaseOrderUseCase(client, validate)
	accessPermissionUC := usecase.NewAccessPermissionUseCase(client, validate)

	swaggerFile := cfg.HTTP.SwaggerFilePath
	if swaggerFile != "" {
		if _, err := os.Stat(swaggerFile); err != nil {
			log.Warn().Str("file", swaggerFile).Msg("swagger no disponible; /docs deshabilitado")
			swaggerFile = ""
		}
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSecs) * time.Second,
		SwaggerFile:  swaggerFile,
	}, httpRouter.RouterDeps{
		AuthUC:             authUC,
		EmployeeUC:         employeeUC,
		DashboardUC:        dashboardUC,
		PurchaseOrderUC:    purchaseOrderUC,
		AccessPermissionUC: accessPermissionUC,
		Sessions:           sessions,
		Board:              board,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		LoginRatePerMin: cfg.HTTP.LoginRatePerMin,
		Log:             log,
	})

	addr := cfg.HTTP.Addr()
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Str("addr", addr).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	pending := board.Pending()
	board.Close()
	log.Info().Int("pending", pending).Msg("servidor detenido")
}
