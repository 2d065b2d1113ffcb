package bootstrap

import (
	appsales "github.com/Zhima-Mochi/minishop-marketplace/internal/application/sales"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/sales"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	workerpresentation "github.com/Zhima-Mochi/minishop-marketplace/internal/presentation/worker"

	"go.uber.org/fx"
)

const salesWorker = "sales-projection"

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewSalesProjection,
	),
	fx.Invoke(func(p *appsales.Projection) { p.Start() }),
)

func NewSalesProjection(
	receipts sales.Repository,
	subscriber domoutbox.Subscriber,
	logger observability.Logger,
	tel observability.Observability,
) *appsales.Projection {
	sub := workerpresentation.NewSubscriber(subscriber, logger, salesWorker)
	return appsales.NewProjection(receipts, sub, tel)
}
