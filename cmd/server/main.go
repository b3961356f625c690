package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/kinovault/backend/auth"
	"github.com/kinovault/backend/auth/middleware/jwtware"
	"github.com/kinovault/backend/config"
	"github.com/kinovault/backend/movies"
	"github.com/kinovault/backend/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if cfg.SigningKey == "" {
		return fmt.Errorf("config: JWT_SIGNING_KEY must be set")
	}

	if cfg.Debug {
		fmt.Println(print.MaybePrettyJSON(map[string]any{
			"address":          cfg.Address,
			"dsn":              cfg.DSN,
			"token_expiration": cfg.TokenExpiration,
			"issuer":           cfg.Issuer,
		}))
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := repository.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	repo := repository.NewManager(db)
	repo.MustValidate()

	auther := auth.NewAuthenticator(repo.Users(), cfg)

	app := fiber.New(fiber.Config{
		AppName: "kinovault",
	})

	// The filter runs on every request; it only halts on bad bearer
	// credentials, everything else defers to the route guards.
	app.Use(jwtware.New(jwtware.Config{
		ContextKey:   cfg.ContextKey,
		AuthScheme:   cfg.AuthScheme,
		TokenService: auther.TokenService(),
		Store:        repo.Users(),
	}))

	auth.RegisterRoutes(app, auth.NewHTTPController(auther, repo.Users(),
		auth.WithControllerDebug(cfg.Debug),
	))

	api := app.Group("/api/movies", jwtware.RequireAuthenticated(cfg.ContextKey))
	movies.RegisterRoutes(api, movies.NewHTTPController(movies.NewService(repo.Movies())))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Address)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
