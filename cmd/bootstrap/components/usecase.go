package components

import (
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/config"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPricingEngine,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewUserAdminCommands,
		commands.NewOutletCommands,
		commands.NewAddressCommands,
		commands.NewCartCommands,
		commands.NewCheckoutCommands,
		commands.NewOrderCommands,
		commands.NewCouponCommands,
		commands.NewCatalogCommands,
		commands.NewReviewCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewOutletQueries,
		queries.NewAddressQueries,
		queries.NewCatalogQueries,
		queries.NewCartQueries,
		queries.NewCouponQueries,
		queries.NewOrderQueries,
		queries.NewReviewQueries,
		func(store queries.ReportReadStore, clk clock.Clock, cfg config.Config) queries.ReportQueries {
			return queries.NewReportQueries(store, clk, cfg.Report.QueryTimeout, cfg.Report.TopItems)
		},
	),
)

func NewPricingEngine(cfg config.Config) (*pricing.Engine, error) {
	policy, err := pricing.ParsePolicy(cfg.Pricing.TaxRate, cfg.Pricing.DeliveryFee, cfg.Pricing.FreeDeliveryAbove)
	if err != nil {
		return nil, err
	}
	return pricing.NewEngine(policy), nil
}
