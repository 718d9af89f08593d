package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blendwell/blendwell/internal/config"
	"github.com/blendwell/blendwell/internal/domain/assessment"
	"github.com/blendwell/blendwell/internal/domain/careteam"
	"github.com/blendwell/blendwell/internal/domain/identity"
	"github.com/blendwell/blendwell/internal/domain/mealplan"
	"github.com/blendwell/blendwell/internal/domain/nutrition"
	"github.com/blendwell/blendwell/internal/domain/tracking"
	"github.com/blendwell/blendwell/internal/platform/aichat"
	"github.com/blendwell/blendwell/internal/platform/auth"
	"github.com/blendwell/blendwell/internal/platform/db"
	"github.com/blendwell/blendwell/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blendwell-server",
		Short: "BlendWell BTF care API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(middleware.BodyLimitConfig{MaxBytes: cfg.BodyLimitBytes}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware: attaches a principal when a valid token is present but
	// never rejects on its own. Route groups decide what they require.
	if cfg.IsDev() && cfg.AuthIssuer == "" {
		e.Use(auth.DevMiddleware())
	} else {
		e.Use(auth.Middleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			JWKSURL:    cfg.AuthJWKSURL,
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	// Services
	profileRepo := identity.NewProfileRepoPG(pool)
	rdProfileRepo := identity.NewRDProfileRepoPG(pool)
	identitySvc := identity.NewService(profileRepo, rdProfileRepo)

	careteamSvc := careteam.NewService(careteam.NewAssignmentRepoPG(pool), identitySvc)
	assessmentSvc := assessment.NewService(assessment.NewRepoPG(pool), careteamSvc)
	nutritionSvc := nutrition.NewService(nutrition.NewRepoPG(pool), careteamSvc)
	trackingSvc := tracking.NewService(tracking.NewRepoPG(pool), careteamSvc)

	aiClient := aichat.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	mealplanSvc := mealplan.NewService(aiClient,
		mealplan.NewGroceryRepoPG(pool),
		mealplan.NewSavedRecipeRepoPG(pool),
		logger)

	// Page areas: the SPA owns rendering; the server only enforces who may
	// land where.
	pages := e.Group("", auth.AreaGuard())
	pageShell := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
	pages.GET("/dashboard", pageShell)
	pages.GET("/dashboard/*", pageShell)
	pages.GET("/rd", pageShell)
	pages.GET("/rd/*", pageShell)
	pages.GET("/login", pageShell)

	// OIDC code exchange
	e.GET("/auth/callback", auth.CallbackHandler(&auth.CodeExchanger{
		TokenEndpoint: cfg.AuthTokenEndpoint,
		ClientID:      cfg.AuthClientID,
		ClientSecret:  cfg.AuthClientSecret,
		RedirectURI:   cfg.AuthRedirectURI,
	}))

	// Health checks
	e.GET("/healthz", db.HealthHandler(pool))

	// API groups
	api := e.Group("/api", auth.RequireAuth())
	rd := api.Group("/rd", auth.RequireRole(auth.RoleRD))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Handlers
	identity.NewHandler(identitySvc).RegisterRoutes(api, rd)
	careteam.NewHandler(careteamSvc).RegisterRoutes(rd)
	assessment.NewHandler(assessmentSvc).RegisterRoutes(api, rd)
	nutrition.NewHandler(nutritionSvc).RegisterRoutes(api, rd)
	tracking.NewHandler(trackingSvc).RegisterRoutes(api, rd)
	mealplan.NewHandler(mealplanSvc).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
