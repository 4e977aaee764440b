package components

import (
	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/domain/promo"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/usecase/commands"
	"experience-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricing.NewDefaultCalculator,
		fx.As(new(pricing.Calculator)),
	),
	promo.NewDefaultValidator,
	fx.Annotate(
		booking.NewUUIDReferenceGenerator,
		fx.As(new(booking.ReferenceGenerator)),
	),
	func(clock clock.Clock, refs booking.ReferenceGenerator) *booking.Services {
		return &booking.Services{
			Clock:      clock,
			References: refs,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewCheckoutCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewExperienceQueries,
		queries.NewBookingQueries,
	),
)
