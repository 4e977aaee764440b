package bootstrap

import (
	"experience-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.PersistenceModule,
	CacheModule,
	BrokerModule,
	components.UseCaseModule,
	components.HandlerModule,
)
