package bootstrap

import "go.uber.org/fx"

// Module wires everything except configuration, which callers supply via
// ConfigModule or fx.Supply.
var Module = fx.Options(
	ObservabilityModule,
	RepositoryModule,
	EventModule,
	PaymentModule,
	UseCaseModule,
	WorkerModule,
	HTTPModule,
)
