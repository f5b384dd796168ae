package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/handler"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/middleware"
	"github.com/gold2201/LocalNetworkProject/internal/auth"
	"github.com/gold2201/LocalNetworkProject/internal/auth/jwt"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
	"github.com/gold2201/LocalNetworkProject/pkg/export"
	"github.com/gold2201/LocalNetworkProject/pkg/helper"
	"github.com/gold2201/LocalNetworkProject/pkg/logger"
	"github.com/gold2201/LocalNetworkProject/pkg/metrics"
	"github.com/gold2201/LocalNetworkProject/pkg/trace"
	"github.com/gold2201/LocalNetworkProject/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", cnst.CommandName, version.Get())
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the inventory tables and exit",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			lg := initLogger(cfg)
			defer func() { _ = lg.Sync() }()

			db := initDatabase(lg, &cfg.Database)
			_ = db.Close()
			lg.Info("migration finished", zap.String("database", cfg.Database.Type))
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "IT inventory API server",
		Long:  `apiserver serves the IT inventory REST API: departments, computers, users, software, network equipment, analytics exports and the operator SQL console.`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", cnst.ApiServerYaml, "path to configuration file")
	rootCmd.AddCommand(versionCmd, migrateCmd)
}

func loadConfig() *config.APIServerConfig {
	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}
	return cfg
}

func initLogger(cfg *config.APIServerConfig) *zap.Logger {
	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return lg
}

// initDatabase opens the configured store and migrates it
func initDatabase(lg *zap.Logger, cfg *config.DatabaseConfig) database.Database {
	db, err := database.NewDatabase(cfg, lg)
	if err != nil {
		lg.Fatal("Failed to initialize database", zap.String("type", cfg.Type), zap.Error(err))
	}
	if err := db.Migrate(context.Background()); err != nil {
		_ = db.Close()
		lg.Fatal("Failed to migrate database", zap.Error(err))
	}
	return db
}

// initI18n keeps the built-in English messages when the translation
// directory cannot be read
func initI18n(lg *zap.Logger, cfg *config.I18nConfig) *i18n.I18n {
	tr := i18n.NewI18n(cfg.DefaultLang)
	if err := tr.LoadTranslations(cfg.Path); err != nil {
		lg.Warn("Failed to load translations", zap.String("path", cfg.Path), zap.Error(err))
	}
	return tr
}

func initRouter(db database.Database, cfg *config.APIServerConfig, lg *zap.Logger, tr *i18n.I18n, m *metrics.Metrics) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	errs := errorx.NewErrorHandler(lg, tr, handler.ClassifyStoreError)
	exp, err := export.NewService(cfg.Export, lg, m)
	if err != nil {
		return nil, err
	}
	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	operator, err := auth.NewOperator(cfg.Operator.Username, cfg.Operator.Password)
	if errors.Is(err, auth.ErrOperatorNotConfigured) {
		lg.Warn("No operator configured, the database console is unavailable")
	} else if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(errs.RecoveryMiddleware())
	r.Use(logger.GinLogger(lg))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	if m != nil {
		r.Use(m.Middleware())
	}
	if len(cfg.Server.CORS.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", cnst.XLang},
			ExposeHeaders:    []string{"Content-Disposition", handler.HeaderTotalCount},
			AllowCredentials: cfg.Server.CORS.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.Language(tr.DefaultLang()))
	r.Use(errs.ErrorMiddleware())

	h := handler.NewHandler(handler.Options{
		DB:       db,
		Config:   cfg,
		Exporter: exp,
		Errors:   errs,
		I18n:     tr,
		JWT:      jwtService,
		Operator: operator,
		Metrics:  m,
		Logger:   lg,
	})
	h.RegisterRoutes(r)
	return r, nil
}

func run() {
	cfg := loadConfig()
	lg := initLogger(cfg)
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := trace.InitTracing(ctx, &cfg.Tracing, lg)
	if err != nil {
		lg.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	db := initDatabase(lg, &cfg.Database)
	defer func() { _ = db.Close() }()

	tr := initI18n(lg, &cfg.I18n)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	r, err := initRouter(db, cfg, lg, tr, m)
	if err != nil {
		lg.Fatal("Failed to initialize router", zap.Error(err))
	}

	if cfg.Server.PID != "" {
		pidPath := helper.GetPIDPath(cfg.Server.PID)
		if err := helper.WritePID(pidPath); err != nil {
			lg.Fatal("Failed to write PID file", zap.String("path", pidPath), zap.Error(err))
		}
		defer func() { _ = helper.RemovePID(pidPath) }()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("Starting apiserver",
			zap.String("version", version.Get()),
			zap.String("addr", srv.Addr),
			zap.String("database", db.Dialect()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down apiserver")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Failed to shut down server gracefully", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		lg.Warn("Failed to flush traces", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
