package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/go-vitals"
	"github.com/goliatone/go-vitals/provider/clerk"
	"github.com/goliatone/go-vitals/storage"
)

type App struct {
	cfg    *vitals.SimpleConfig
	bunDB  *bun.DB
	repo   vitals.RepositoryManager
	auth   *vitals.Auther
	api    *vitals.API
	store  storage.ObjectStore
	logger *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	// missing .env is fine, plain env vars still apply
	_ = godotenv.Load()

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("vitals"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	app := &App{
		cfg:    vitals.NewConfigFromEnv(),
		logger: lgr,
	}

	if app.cfg.GetSigningKey() == "" {
		lgr.Error("AUTH_SIGNING_KEY is required")
		os.Exit(1)
	}

	ctx := context.Background()

	if err := withPersistence(ctx, app); err != nil {
		lgr.Error("persistence setup failed", "error", err)
		os.Exit(1)
	}

	if err := withObjectStore(ctx, app); err != nil {
		lgr.Error("object store setup failed", "error", err)
		os.Exit(1)
	}

	if err := withAuth(app); err != nil {
		lgr.Error("auth setup failed", "error", err)
		os.Exit(1)
	}

	srv := fiber.New(fiber.Config{
		AppName: "vitals",
	})

	app.api.Register(srv)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	go func() {
		if err := srv.Listen(addr); err != nil {
			lgr.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	waitExitSignal()

	if err := srv.Shutdown(); err != nil {
		lgr.Error("shutdown error", "error", err)
	}
}

func withPersistence(ctx context.Context, app *App) error {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:vitals.db?cache=shared&mode=rwc"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	// m2m join tables must be registered before any relation query
	db.RegisterModel((*vitals.AlbumImage)(nil))

	models := []any{
		(*vitals.User)(nil),
		(*vitals.BloodPressureReading)(nil),
		(*vitals.Image)(nil),
		(*vitals.Album)(nil),
		(*vitals.AlbumImage)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	app.bunDB = db
	app.repo = vitals.NewRepositoryManager(db)
	app.repo.MustValidate()

	return nil
}

func withObjectStore(ctx context.Context, app *App) error {
	store, err := storage.NewMinioStore(ctx, storage.Config{
		Endpoint:        envOr("MINIO_ENDPOINT", "localhost:9000"),
		AccessKeyID:     envOr("MINIO_ACCESS_KEY", "minioadmin"),
		SecretAccessKey: envOr("MINIO_SECRET_KEY", "minioadmin"),
		UseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:          envOr("MINIO_BUCKET", "vitals-images"),
	})
	if err != nil {
		return err
	}

	app.store = store
	return nil
}

func withAuth(app *App) error {
	provider := vitals.NewUserProvider(app.repo.Users()).
		WithLogger(app.GetLogger("auth:provider"))

	app.auth = vitals.NewAuthenticator(provider, app.cfg).
		WithLogger(app.GetLogger("auth"))

	// local tokens always validate; Clerk tokens only when configured
	validators := []vitals.TokenValidator{app.auth.TokenService()}

	if domain := os.Getenv("CLERK_DOMAIN"); domain != "" {
		clerkValidator, err := clerk.NewTokenValidator(clerk.DefaultConfig(
			domain,
			app.cfg.GetAudience(),
		))
		if err != nil {
			return err
		}
		validators = append([]vitals.TokenValidator{clerkValidator}, validators...)
	}

	gate := vitals.NewMultiTokenValidator(validators...)
	app.auth.WithTokenValidator(gate)

	registrar := vitals.NewRegistrar(app.repo).
		WithLogger(app.GetLogger("auth:registrar"))

	app.api = vitals.NewAPI(app.auth, registrar, app.repo, app.store, gate, app.cfg).
		WithLogger(app.GetLogger("http"))

	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func waitExitSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
