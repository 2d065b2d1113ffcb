package bootstrap

import (
	appcategory "github.com/Zhima-Mochi/minishop-marketplace/internal/application/category"
	appdiscount "github.com/Zhima-Mochi/minishop-marketplace/internal/application/discount"
	appitem "github.com/Zhima-Mochi/minishop-marketplace/internal/application/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/application/purchase"
	appreservation "github.com/Zhima-Mochi/minishop-marketplace/internal/application/reservation"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	domoutbox "github.com/Zhima-Mochi/minishop-marketplace/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/config"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		NewItemRegistry,
		appcategory.NewRegistry,
		appdiscount.NewLedger,
		appreservation.NewLedger,
		purchase.NewProcessor,
	),
)

func NewItemRegistry(
	cfg config.Config,
	items item.Repository,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *appitem.Registry {
	return appitem.NewRegistry(items, publisher, tel, appitem.WithStrictListing(cfg.Market.StrictListing))
}
