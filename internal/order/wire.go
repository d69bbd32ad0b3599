// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/address"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/paymethod"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/voucher"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	sequencenumber.NewGenerator,
	event.NewOrderEventProducer,
	repository.NewOrderRepository,
	service.NewService,
	web.NewHandler)

func InitModule(db *egorm.Component,
	cache ecache.Cache,
	q mq.MQ,
	productModule *product.Module,
	addressModule *address.Module,
	paymethodModule *paymethod.Module,
	voucherModule *voucher.Module,
	cartModule *cart.Module,
	paymentModule *payment.Module) (*Module, error) {
	wire.Build(ModuleSet,
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.FieldsOf(new(*address.Module), "Svc"),
		wire.FieldsOf(new(*paymethod.Module), "Svc"),
		wire.FieldsOf(new(*voucher.Module), "Svc"),
		wire.FieldsOf(new(*cart.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "GatewaySvc"),
		wire.Struct(new(Module), "*"))
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
