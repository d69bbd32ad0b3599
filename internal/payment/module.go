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

package payment

import (
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/ecodeclub/emall/internal/payment/internal/service/momo"
	"github.com/ecodeclub/emall/internal/payment/internal/web"
)

type (
	Handler            = web.Handler
	GatewayService     = momo.Service
	ReconcileService   = service.ReconcileService
	OrderStatusUpdater = service.OrderStatusUpdater
	OrderAmountFinder  = service.OrderAmountFinder
	CreatePayment      = domain.CreatePayment
	GatewayResponse    = domain.GatewayResponse
	IPNotification     = domain.IPNotification
	PaymentStatus      = domain.PaymentStatus
)

const (
	// Brand 钱包品牌, 结账时和支付方式的 brand 匹配才会走网关
	Brand = momo.Brand

	PaymentStatusPending   = domain.PaymentStatusPending
	PaymentStatusConfirmed = domain.PaymentStatusConfirmed
	PaymentStatusCancelled = domain.PaymentStatusCancelled
)

type Module struct {
	Hdl          *Handler
	GatewaySvc   GatewayService
	ReconcileSvc ReconcileService
}
