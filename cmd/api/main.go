package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/config"
	admissionHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/admission"
	auditHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/audit"
	authHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/auth"
	employeeHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/employee"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/handler/health"
	patientHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/patient"
	prescriptionHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/prescription"
	promHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/prometheus"
	timelineHandler "github.com/Maxfurry/Hospital-Managment-Software/internal/handler/timeline"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/middleware"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository/memory"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository/postgres"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/router"
	admissionService "github.com/Maxfurry/Hospital-Managment-Software/internal/service/admission"
	auditService "github.com/Maxfurry/Hospital-Managment-Software/internal/service/audit"
	authService "github.com/Maxfurry/Hospital-Managment-Software/internal/service/auth"
	employeeService "github.com/Maxfurry/Hospital-Managment-Software/internal/service/employee"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/service/guard"
	patientService "github.com/Maxfurry/Hospital-Managment-Software/internal/service/patient"
	prescriptionService "github.com/Maxfurry/Hospital-Managment-Software/internal/service/prescription"
	timelineService "github.com/Maxfurry/Hospital-Managment-Software/internal/service/timeline"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/auth"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/logger"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/metrics"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/security"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/validator"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "hms-api",
		Short: "Hospital management API server",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config.yml")

	rootCmd.AddCommand(serveCmd(&configFile))
	rootCmd.AddCommand(migrateCmd(&configFile))
	rootCmd.AddCommand(adminCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(file string) (*config.Config, error) {
	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

// openStore returns the configured store. The memory driver keeps all data
// in process and is meant for local development.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (repository.Store, error) {
	if cfg.Driver == "memory" {
		log.Warn().Msg("using in-memory store, data will not survive a restart")
		return memory.NewStore(), nil
	}

	db, err := postgres.NewDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return postgres.NewStore(db), nil
}

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "hms")

	tokens, err := auth.NewTokenAuthority(cfg.JWT.Secret, auth.WithTTL(cfg.JWT.TTL()))
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	g := guard.New(store, validator.New(), m)

	// Initialize services
	authSvc := authService.NewService(g, tokens, hasher, authService.NewThrottle(cfg.Login.MaxAttempts, cfg.Login.Lockout), m)
	employeeSvc := employeeService.NewService(g, hasher)
	admissionSvc := admissionService.NewService(g)
	patientSvc := patientService.NewService(g)
	prescriptionSvc := prescriptionService.NewService(g)
	timelineSvc := timelineService.NewService(g)
	auditSvc := auditService.NewService(g)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		router.Handlers{
			Auth:    authHandler.NewHandler(authSvc),
			Health:  health.NewHandler(store),
			Metrics: promHandler.New(reg),
			Resources: []router.Handler{
				employeeHandler.NewHandler(employeeSvc),
				admissionHandler.NewHandler(admissionSvc),
				patientHandler.NewHandler(patientSvc),
				prescriptionHandler.NewHandler(prescriptionSvc),
				timelineHandler.NewHandler(timelineSvc),
				auditHandler.NewHandler(auditSvc),
			},
		},
		m,
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

func migrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != "postgres" {
				return fmt.Errorf("migrate requires the postgres driver, got %q", cfg.Database.Driver)
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			db, err := postgres.NewDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			store := postgres.NewStore(db)
			defer store.Close()

			if err := store.Migrate(ctx); err != nil {
				return err
			}
			log.Info().Str("database", cfg.Database.Name).Msg("schema is up to date")
			return nil
		},
	}
}

func adminCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var (
		req         model.CreateEmployeeRequest
		dateOfBirth string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an ADMIN employee without an existing session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == "memory" {
				return errors.New("admin create needs a persistent database driver")
			}

			dob, err := time.Parse("2006-01-02", dateOfBirth)
			if err != nil {
				return fmt.Errorf("--dob must be YYYY-MM-DD: %w", err)
			}
			req.DateOfBirth = model.NewDate(dob)

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			store, err := openStore(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			g := guard.New(store, validator.New(), metrics.NewNop())
			svc := employeeService.NewService(g, security.NewBcryptHasher(bcrypt.DefaultCost))

			created, err := svc.Bootstrap(ctx, &req)
			if err != nil {
				return err
			}
			fmt.Printf("Created admin %s (%s)\n", created.Email, created.ID)
			return nil
		},
	}

	createCmd.Flags().StringVar(&req.Email, "email", "", "login email")
	createCmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	createCmd.Flags().StringVar(&req.FirstName, "firstname", "", "first name")
	createCmd.Flags().StringVar(&req.LastName, "lastname", "", "last name")
	createCmd.Flags().StringVar(&req.Gender, "gender", "other", "male, female or other")
	createCmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number")
	createCmd.Flags().StringVar(&req.Address, "address", "", "postal address")
	createCmd.Flags().StringVar(&dateOfBirth, "dob", "", "date of birth, YYYY-MM-DD")
	for _, name := range []string{"email", "password", "firstname", "lastname", "phone", "address", "dob"} {
		_ = createCmd.MarkFlagRequired(name)
	}

	cmd.AddCommand(createCmd)
	return cmd
}
