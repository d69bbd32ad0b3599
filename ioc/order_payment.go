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

package ioc

import (
	"context"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/address"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/paymethod"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/voucher"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
)

// OrderPaymentModules 把互相依赖的两个模块捆在一起初始化:
// 结账要走支付网关, 对账要回写订单状态
type OrderPaymentModules struct {
	Order   *order.Module
	Payment *payment.Module
}

func InitOrderPaymentModules(db *egorm.Component, cache ecache.Cache, q mq.MQ,
	productModule *product.Module,
	addressModule *address.Module,
	paymethodModule *paymethod.Module,
	voucherModule *voucher.Module,
	cartModule *cart.Module) (*OrderPaymentModules, error) {
	// 延迟绑定剪开初始化顺序上的环:
	// 支付模块先拿到适配器, 订单服务建好之后再注入
	adapter := &orderServiceAdapter{}
	paymentModule, err := payment.InitModule(q, adapter, adapter)
	if err != nil {
		return nil, err
	}
	orderModule, err := order.InitModule(db, cache, q,
		productModule, addressModule, paymethodModule,
		voucherModule, cartModule, paymentModule)
	if err != nil {
		return nil, err
	}
	adapter.svc = orderModule.Svc
	return &OrderPaymentModules{
		Order:   orderModule,
		Payment: paymentModule,
	}, nil
}

// orderServiceAdapter 让支付模块不用 import 订单模块
type orderServiceAdapter struct {
	svc order.Service
}

func (a *orderServiceAdapter) UpdatePaymentStatus(ctx context.Context,
	orderID int64, status payment.PaymentStatus, transID int64, message string) error {
	return a.svc.UpdatePaymentStatus(ctx, orderID, string(status), transID, message)
}

func (a *orderServiceAdapter) FindTotalAmount(ctx context.Context, uid, orderID int64) (int64, error) {
	return a.svc.FindTotalAmount(ctx, uid, orderID)
}
