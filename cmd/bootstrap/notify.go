package bootstrap

import (
	"log/slog"

	"food-delivery-api/internal/infra/notify"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/config"
	"food-delivery-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		func(cfg config.Config, logger *slog.Logger) notify.Publisher {
			return notify.NewPublisher(cfg.Kafka, logger)
		},
		fx.Annotate(
			func(cfg config.Config, clk clock.Clock) *notify.OutboxNotifier {
				return notify.NewOutboxNotifier(cfg.Kafka.Topic, clk)
			},
			fx.As(new(shared.Notifier)),
		),
		NewRelay,
	),
	fx.Invoke(func(*notify.Relay) {}),
)

func NewRelay(lc fx.Lifecycle, pool *pgxpool.Pool, publisher notify.Publisher, cfg config.Config, clk clock.Clock, logger *slog.Logger) *notify.Relay {
	relay := notify.NewRelay(pool, publisher, cfg.Notify, clk, logger)
	lc.Append(fx.Hook{
		OnStart: relay.Start,
		OnStop:  relay.Stop,
	})
	return relay
}
