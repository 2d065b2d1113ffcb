package bootstrap

import (
	appdiscount "github.com/Zhima-Mochi/minishop-marketplace/internal/application/discount"
	appreservation "github.com/Zhima-Mochi/minishop-marketplace/internal/application/reservation"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/category"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/discount"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/reservation"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/sales"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/pkg/clock"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			memory.NewItemRepository,
			fx.As(new(item.Repository)),
			fx.As(new(appdiscount.ItemReader)),
			fx.As(new(appreservation.ItemReader)),
		),
		fx.Annotate(
			memory.NewCategoryRepository,
			fx.As(new(category.Repository)),
		),
		fx.Annotate(
			memory.NewDiscountRepository,
			fx.As(new(discount.Repository)),
		),
		fx.Annotate(
			memory.NewReservationRepository,
			fx.As(new(reservation.Repository)),
		),
		fx.Annotate(
			memory.NewSalesRepository,
			fx.As(new(sales.Repository)),
		),
		fx.Annotate(
			memory.NewWalletBook,
			fx.As(new(payment.WalletBook)),
		),
		clock.NewRealClock,
	),
)
