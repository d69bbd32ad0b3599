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

package service

import (
	"context"
	"regexp"
	"strconv"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/event"
	"github.com/ecodeclub/emall/internal/payment/internal/service/momo"
	"github.com/gotomicro/ego/core/elog"
)

// OrderStatusUpdater 由订单模块实现, 在 ioc 里装配,
// 这样两个模块不用互相 import
type OrderStatusUpdater interface {
	// UpdatePaymentStatus 扩展字段写不进去时要降级成只写状态, 不能丢整条对账
	UpdatePaymentStatus(ctx context.Context, orderID int64, status domain.PaymentStatus, transID int64, message string) error
}

// OrderAmountFinder 建单前从订单侧取可信金额, 不信客户端传来的数
type OrderAmountFinder interface {
	FindTotalAmount(ctx context.Context, uid, orderID int64) (int64, error)
}

// gatewayOrderIDPattern 网关 orderId 的固定形态, extraData 解不出来时靠它兜底
var gatewayOrderIDPattern = regexp.MustCompile(`^ORDER_(\d+)_`)

type ReconcileService interface {
	// HandleIPN 接受至少一次投递, 重复通知落到同一个状态上是无害的.
	// 验签失败或找不到订单时静默吞掉, 不向未认证的回调方泄露任何结论
	HandleIPN(ctx context.Context, n domain.IPNotification) error
}

func NewReconcileService(gateway momo.Service,
	updater OrderStatusUpdater,
	producer event.PaymentEventProducer) ReconcileService {
	return &reconcileService{
		gateway:  gateway,
		updater:  updater,
		producer: producer,
		logger:   elog.DefaultLogger,
	}
}

type reconcileService struct {
	gateway  momo.Service
	updater  OrderStatusUpdater
	producer event.PaymentEventProducer
	logger   *elog.Component
}

func (s *reconcileService) HandleIPN(ctx context.Context, n domain.IPNotification) error {
	if !s.gateway.VerifyIPNSignature(n) {
		s.logger.Warn("MoMo 回调验签失败",
			elog.String("order_id", n.OrderID),
			elog.String("request_id", n.RequestID))
		return nil
	}

	orderID, ok := s.gateway.DecodeExtraData(n.ExtraData)
	if !ok {
		orderID, ok = s.parseGatewayOrderID(n.OrderID)
	}
	if !ok {
		s.logger.Warn("MoMo 回调无法定位内部订单",
			elog.String("order_id", n.OrderID))
		return nil
	}

	status := domain.PaymentStatusCancelled
	if n.ResultCode == 0 {
		status = domain.PaymentStatusConfirmed
	}
	err := s.updater.UpdatePaymentStatus(ctx, orderID, status, n.TransID, n.Message)
	if err != nil {
		s.logger.Error("对账更新订单支付状态失败",
			elog.FieldErr(err),
			elog.Int64("order_id", orderID),
			elog.String("status", string(status)))
		return err
	}

	evt := event.PaymentEvent{
		OrderID: orderID,
		Status:  string(status),
		TransID: n.TransID,
	}
	if er := s.producer.Produce(ctx, evt); er != nil {
		// 事件发不出去不影响对账结论
		s.logger.Error("发送支付事件失败",
			elog.FieldErr(er),
			elog.Any("event", evt))
	}
	return nil
}

func (s *reconcileService) parseGatewayOrderID(gatewayOrderID string) (int64, bool) {
	m := gatewayOrderIDPattern.FindStringSubmatch(gatewayOrderID)
	if len(m) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
