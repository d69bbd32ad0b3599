//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/emall/internal/address"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/paymethod"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/voucher"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		product.InitModule,
		wire.FieldsOf(new(*product.Module), "Hdl"),
		address.InitModule,
		wire.FieldsOf(new(*address.Module), "Hdl"),
		paymethod.InitModule,
		wire.FieldsOf(new(*paymethod.Module), "Hdl"),
		voucher.InitModule,
		wire.FieldsOf(new(*voucher.Module), "Hdl"),
		cart.InitModule,
		wire.FieldsOf(new(*cart.Module), "Hdl"),
		InitOrderPaymentModules,
		wire.FieldsOf(new(*OrderPaymentModules), "Order", "Payment"),
		wire.FieldsOf(new(*order.Module), "Hdl"),
		wire.FieldsOf(new(*payment.Module), "Hdl"),
		InitSession,
		initGinxServer)
	return new(App), nil
}
