package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/mentorhubapp/mentorhub"
	"github.com/mentorhubapp/mentorhub/middleware/jwtware"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := mentorhub.NewLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger mentorhub.Logger) error {
	cfg, err := mentorhub.LoadConfig()
	if err != nil {
		return err
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mentorhub.Migrate(ctx, sqldb); err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	repo := mentorhub.NewRepositoryManager(db)
	repo.MustValidate()

	tokenService := mentorhub.NewTokenService(
		[]byte(cfg.SigningKey),
		cfg.TokenExpiration,
		"mentorhub",
		logger,
	)

	auther := mentorhub.NewAuthenticator(repo.Users(), tokenService).
		WithLogger(logger)

	authController := mentorhub.NewAuthController(
		mentorhub.WithAuther(auther),
		mentorhub.WithControllerConfig(cfg),
		mentorhub.WithControllerLogger(logger),
	)

	mentorController := mentorhub.NewMentorController(repo, cfg, logger)

	app := fiber.New(fiber.Config{
		AppName:      "mentorhub",
		BodyLimit:    int(cfg.MaxUploadBytes) + 1<<20,
		ErrorHandler: mentorhub.NewErrorHandler(logger),
	})

	protected := jwtware.New(jwtware.Config{
		TokenValidator: func(raw string) (jwtware.AuthClaims, error) {
			return tokenService.Validate(raw)
		},
		TokenLookup:  "cookie:" + cfg.CookieName + ",header:" + fiber.HeaderAuthorization,
		ErrorHandler: authController.UnauthenticatedHandler,
	})

	authController.RegisterAuthRoutes(app, protected)
	mentorController.RegisterMentorRoutes(app)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}
