package components

import (
	"food-delivery-api/internal/handler"
	"food-delivery-api/internal/handler/api"
	"food-delivery-api/internal/handler/middleware"
	"food-delivery-api/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewUserHandler,
		api.NewOutletHandler,
		api.NewAddressHandler,
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewDeliveryHandler,
		api.NewCouponHandler,
		api.NewReviewHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
		middleware.NewMetrics,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewLoginRateLimiter(cfg.RateLimit)
		},
	),
	fx.Invoke(handler.NewRouter),
)
