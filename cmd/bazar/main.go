package main

import (
	"context"
	"log/slog"
	"os"

	"bazar/config"
	"bazar/internal/delivery"
	"bazar/internal/delivery/http"
	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/router/handler"
	requestmiddleware "bazar/internal/delivery/middleware"
	"bazar/internal/domain/service"
	"bazar/internal/infra/auth"
	logs "bazar/internal/infra/log"
	"bazar/internal/infra/persistence/postgres"
	"bazar/internal/infra/qrcode"
	"bazar/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewSessionRepository,
			postgres.NewShopRepository,
			postgres.NewProductRepository,
			postgres.NewPurchaseRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewTokenGenerator,
			newQRCodeService,
		),
	)
}

// newPasswordHasher builds the argon2id hasher from configured tuning
// parameters; missing config falls back to the built-in defaults.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil || cfg.Auth.Argon2 == nil {
		return auth.NewArgon2Hasher()
	}

	argon2 := cfg.Auth.Argon2

	return auth.NewArgon2HasherWithParams(argon2.MemoryKiB, argon2.Iterations, argon2.Parallelism)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "http://localhost:8080")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewSessionService,
			impl.NewUserService,
			impl.NewShopService,
			impl.NewProductService,
			impl.NewPurchaseService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			requestmiddleware.NewRequestIDMiddleware,
			requestmiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewSessionHandler,
			handler.NewShopHandler,
			handler.NewProductHandler,
			handler.NewPurchaseHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
