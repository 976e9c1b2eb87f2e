package main

import (
	"context"
	"log/slog"
	"os"

	"francheasy/config"
	"francheasy/internal/delivery"
	"francheasy/internal/delivery/http"
	"francheasy/internal/delivery/http/middleware"
	"francheasy/internal/delivery/http/router/handler"
	"francheasy/internal/domain/service"
	"francheasy/internal/infra/auth"
	"francheasy/internal/infra/auth/pkce"
	"francheasy/internal/infra/auth/vk"
	"francheasy/internal/infra/cache"
	"francheasy/internal/infra/docs"
	logs "francheasy/internal/infra/log"
	"francheasy/internal/infra/persistence/postgres"
	"francheasy/internal/infra/pubsub"
	"francheasy/internal/infra/qrcode"
	"francheasy/internal/infra/storage"
	"francheasy/internal/usecase/impl"

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
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			cache.New,
			storage.New,
			docs.NewSessionRegistry,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewFrancheasyRepository,
			postgres.NewStoreRepository,
			postgres.NewPovilionRepository,
			postgres.NewBusinessRepository,
			postgres.NewBusinessRequestRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			pkce.NewGenerator,
			cache.NewProofStore,
			vk.NewOAuthService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewFrancheasyService,
			impl.NewStoreService,
			impl.NewPovilionService,
			impl.NewBusinessService,
			impl.NewBusinessRequestService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewFrancheasyHandler,
			handler.NewStoreHandler,
			handler.NewPovilionHandler,
			handler.NewBusinessHandler,
			handler.NewBusinessRequestHandler,
			handler.NewDocsHandler,
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
