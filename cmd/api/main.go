package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumob/backend/internal/auth"
	"github.com/lumob/backend/internal/config"
	"github.com/lumob/backend/internal/handlers"
	"github.com/lumob/backend/internal/logger"
	"github.com/lumob/backend/internal/middleware"
	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
	"github.com/lumob/backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LUMOB Intranet API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	usuarioRepo := repositories.NewUsuarioRepository(db, logger.Logger)

	// Ensure the default admin account exists
	if err := seedAdmin(context.Background(), usuarioRepo); err != nil {
		logger.Logger.Fatal("Failed to seed admin user", zap.Error(err))
	}
	moduloRepo := repositories.NewModuloRepository(db, logger.Logger)
	funcionarioRepo := repositories.NewFuncionarioRepository(db, logger.Logger)
	cargoRepo := repositories.NewCargoRepository(db, logger.Logger)
	feriasRepo := repositories.NewFeriasRepository(db, logger.Logger)
	dependenteRepo := repositories.NewDependenteRepository(db, logger.Logger)
	clienteRepo := repositories.NewClienteRepository(db, logger.Logger)
	contratoRepo := repositories.NewContratoRepository(db, logger.Logger)
	obraRepo := repositories.NewObraRepository(db, logger.Logger)
	artRepo := repositories.NewArtRepository(db, logger.Logger)
	medicaoRepo := repositories.NewMedicaoRepository(db, logger.Logger)
	avancoRepo := repositories.NewAvancoRepository(db, logger.Logger)
	seguroRepo := repositories.NewSeguroRepository(db, logger.Logger)
	reidiRepo := repositories.NewReidiRepository(db, logger.Logger)
	incidenteRepo := repositories.NewIncidenteRepository(db, logger.Logger)
	asoRepo := repositories.NewASORepository(db, logger.Logger)
	treinamentoRepo := repositories.NewTreinamentoRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(usuarioRepo, moduloRepo, tokenGenerator)
	userService := services.NewUserService(usuarioRepo, moduloRepo)
	pessoalService := services.NewPessoalService(funcionarioRepo, cargoRepo, feriasRepo, dependenteRepo)
	alertaService := services.NewAlertaService(funcionarioRepo, feriasRepo)
	obrasService := services.NewObrasService(clienteRepo, contratoRepo, obraRepo, artRepo, medicaoRepo, avancoRepo, seguroRepo, reidiRepo)
	segurancaService := services.NewSegurancaService(incidenteRepo, asoRepo, treinamentoRepo, funcionarioRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	usuarioHandler := handlers.NewUsuarioHandler(userService, logger.Logger)
	pessoalHandler := handlers.NewPessoalHandler(pessoalService, alertaService, logger.Logger)
	obrasHandler := handlers.NewObrasHandler(obrasService, logger.Logger)
	segurancaHandler := handlers.NewSegurancaHandler(segurancaService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator, moduloRepo)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes (login, logout)
		authHandler.RegisterRoutes(r)

		// Everything else requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			authHandler.RegisterProtectedRoutes(r)

			// User administration is admin-only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				usuarioHandler.RegisterRoutes(r)
			})

			// Each module group is gated on its named permission
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireModule("Pessoal"))
				pessoalHandler.RegisterRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireModule("Obras"))
				obrasHandler.RegisterRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireModule("Seguranca"))
				segurancaHandler.RegisterRoutes(r)
			})
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// adminSeeder is the slice of the user repository the seed step needs
type adminSeeder interface {
	GetByUsername(ctx context.Context, username string) (*models.Usuario, error)
	Create(ctx context.Context, u *models.Usuario) error
}

// seedAdmin creates the default admin account on first start. The initial
// password comes from ADMIN_INITIAL_PASSWORD and should be changed after the
// first login.
func seedAdmin(ctx context.Context, users adminSeeder) error {
	existing, err := users.GetByUsername(ctx, "admin")
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return users.Create(ctx, &models.Usuario{
		Username:     "admin",
		Email:        "admin@lumob.com.br",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "lumob_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
