package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/roster-management/internal"
	"github.com/frahmantamala/roster-management/internal/auth"
	authPostgres "github.com/frahmantamala/roster-management/internal/auth/postgres"
	"github.com/frahmantamala/roster-management/internal/employee"
	employeePostgres "github.com/frahmantamala/roster-management/internal/employee/postgres"
	"github.com/frahmantamala/roster-management/internal/roster"
	rosterPostgres "github.com/frahmantamala/roster-management/internal/roster/postgres"
	"github.com/frahmantamala/roster-management/internal/settings"
	settingsPostgres "github.com/frahmantamala/roster-management/internal/settings/postgres"
	"github.com/frahmantamala/roster-management/internal/shift"
	shiftPostgres "github.com/frahmantamala/roster-management/internal/shift/postgres"
	"github.com/frahmantamala/roster-management/internal/team"
	teamPostgres "github.com/frahmantamala/roster-management/internal/team/postgres"
	"github.com/frahmantamala/roster-management/internal/transport/rest"
	"github.com/frahmantamala/roster-management/internal/user"
	userPostgres "github.com/frahmantamala/roster-management/internal/user/postgres"
	"github.com/frahmantamala/roster-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, buildHandlers(config, gormDB, lg), lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

func buildHandlers(cfg *internal.Config, db *gorm.DB, lg *slog.Logger) rest.Handlers {
	authService := auth.NewService(
		authPostgres.NewUserRepository(db),
		authPostgres.NewSessionRepository(db),
		cfg.Security.BCryptCost,
		lg,
	)

	shiftRepo := shiftPostgres.NewShiftRepository(db)
	employeeRepo := employeePostgres.NewEmployeeRepository(db)

	rosterService := roster.NewService(
		rosterPostgres.NewRosterRepository(db),
		shiftRepo,
		employeeRepo,
		lg,
	)

	return rest.Handlers{
		Auth:     auth.NewHandler(authService),
		Team:     team.NewHandler(team.NewService(teamPostgres.NewTeamRepository(db), lg)),
		User:     user.NewHandler(user.NewService(userPostgres.NewUserRepository(db), authService, authService, lg)),
		Settings: settings.NewHandler(settings.NewService(settingsPostgres.NewSettingsRepository(db), lg)),
		Employee: employee.NewHandler(employee.NewService(employeeRepo, lg)),
		Shift:    shift.NewHandler(shift.NewService(shiftRepo, lg)),
		Roster:   roster.NewHandler(rosterService, cfg.Export.Dir),
	}
}

// initDB opens the pgx stdlib connection shared by gorm and health checks.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
