package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/vendordocs-api/internal/application/analytics"
	"github.com/jhoicas/vendordocs-api/internal/application/auth"
	"github.com/jhoicas/vendordocs-api/internal/application/bootstrap"
	"github.com/jhoicas/vendordocs-api/internal/application/documents"
	"github.com/jhoicas/vendordocs-api/internal/application/principal"
	"github.com/jhoicas/vendordocs-api/internal/application/reports"
	"github.com/jhoicas/vendordocs-api/internal/application/usecase"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/vendordocs-api/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/vendordocs-api/internal/infrastructure/redis"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/storage"
	infraxlsx "github.com/jhoicas/vendordocs-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/vendordocs-api/internal/interfaces/http"
	"github.com/jhoicas/vendordocs-api/pkg/config"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run arma las dependencias y sirve hasta recibir SIGINT/SIGTERM.
// Devuelve error en lugar de salir para que los defer cierren pool y Redis.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("inicializar store: %w", err)
	}
	defer st.close()

	files, err := storage.NewOSFileStorage(cfg.Storage.UploadDir)
	if err != nil {
		return fmt.Errorf("directorio de uploads %s: %w", cfg.Storage.UploadDir, err)
	}
	appMetrics := metrics.New()

	// Límite de intentos de login: solo si hay Redis configurado
	var throttle auth.LoginThrottle
	if cfg.Redis.Enabled() {
		rdb := infraredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no responde; el limitador fallará abierto")
		}
		throttle = infraredis.NewLoginThrottle(rdb, cfg.Redis.MaxLoginAttempts, time.Duration(cfg.Redis.LockoutMinutes)*time.Minute)
	}

	userUC := usecase.NewUserUseCase(st.users)
	assignmentUC := usecase.NewAssignmentUseCase(st.users)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, throttle, appMetrics, log)
	documentsUC := documents.NewUseCase(st.docs, st.users, files, appMetrics, log)
	dashboardUC := appanalytics.NewDashboardUseCase(st.users, st.docs)

	// Exportación: PDF (maroto) y Excel (excelize)
	exportUC := reports.NewExportUseCase(documentsUC, st.users, map[string]reports.Renderer{
		reports.FormatPDF:  infrapdf.NewMarotoPDFGenerator(),
		reports.FormatXLSX: infraxlsx.NewExcelReportGenerator(),
	})

	if cfg.Store.Driver == config.StoreDriverMemory || cfg.Seed.OnStart {
		if err := bootstrap.Seed(ctx, st.users, userUC, assignmentUC, bootstrap.Options{
			AdminEmail:    cfg.Seed.AdminEmail,
			AdminPassword: cfg.Seed.AdminPassword,
			Demo:          cfg.Seed.Demo,
		}, log); err != nil {
			return fmt.Errorf("seed inicial: %w", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Storage.MaxUploadBytes(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "VendorDocs API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		AssignmentUC: assignmentUC,
		DashboardUC:  dashboardUC,
		DocumentsUC:  documentsUC,
		ExportUC:     exportUC,
		Principals:   principal.NewLoader(st.users),
		Health:       st.health,
		Metrics:      appMetrics,
		Uploads:      files.HTTPFileSystem(),
		Logger:       log,
		ServiceName:  cfg.App.Name,
		JWTSecret:    cfg.JWT.Secret,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	return nil
}
