package bootstrap

import (
	"context"
	"log/slog"

	"experience-booking/internal/infra/broker"
	"experience-booking/internal/pkg/config"
	"experience-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if cfg.Broker.URL == "" {
		return broker.NewLogPublisher(logger)
	}

	pub, err := broker.NewRabbitPublisher(cfg.Broker.URL, cfg.Broker.Queue, logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable, booking events will only be logged", slog.String("error", err.Error()))
		return broker.NewLogPublisher(logger)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub
}
