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

package web

import (
	"fmt"
	"net/http"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/ecodeclub/emall/internal/payment/internal/service/momo"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

// minPaymentAmount 网关拒收低于 1000 VND 的订单
const minPaymentAmount = 1000

var _ ginx.Handler = &Handler{}

type Handler struct {
	gateway      momo.Service
	reconciler   service.ReconcileService
	amountFinder service.OrderAmountFinder
	updater      service.OrderStatusUpdater
}

func NewHandler(gateway momo.Service,
	reconciler service.ReconcileService,
	amountFinder service.OrderAmountFinder,
	updater service.OrderStatusUpdater) *Handler {
	return &Handler{
		gateway:      gateway,
		reconciler:   reconciler,
		amountFinder: amountFinder,
		updater:      updater,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	// 回调端点对网关只承诺送达确认, 任何结局都是空 204,
	// 4xx/5xx 只会引来无休止的重投
	server.POST("/momo/ipn", h.IPN)
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/momo")
	g.POST("/create-payment", ginx.BS[CreatePaymentReq](h.CreatePayment))
}

// CreatePayment 对已存在的订单重新发起钱包支付, 金额以订单侧为准
func (h *Handler) CreatePayment(ctx *ginx.Context, req CreatePaymentReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	amount, err := h.amountFinder.FindTotalAmount(ctx.Request.Context(), uid, req.OrderID)
	if err != nil {
		return orderInvalidResult, fmt.Errorf("查询订单金额失败: %w", err)
	}
	if amount < minPaymentAmount {
		return amountTooSmallResult, nil
	}
	err = h.updater.UpdatePaymentStatus(ctx.Request.Context(), req.OrderID,
		domain.PaymentStatusPending, 0, "")
	if err != nil {
		return systemErrorResult, fmt.Errorf("重置订单支付状态失败: %w", err)
	}
	resp, err := h.gateway.CreatePayment(ctx.Request.Context(), domain.CreatePayment{
		OrderID:   req.OrderID,
		Amount:    amount,
		OrderInfo: fmt.Sprintf("Thanh toan don hang #%d", req.OrderID),
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("创建网关支付失败: %w", err)
	}
	return ginx.Result{
		Data: CreatePaymentResp{
			PayURL:         resp.PayURL,
			GatewayOrderID: resp.GatewayOrderID,
			RequestID:      resp.RequestID,
		},
	}, nil
}

func (h *Handler) IPN(ctx *gin.Context) {
	var n domain.IPNotification
	// 请求体解析失败也一样回 204, 不给对方任何线索
	_ = ctx.ShouldBindJSON(&n)
	_ = h.reconciler.HandleIPN(ctx.Request.Context(), n)
	ctx.Status(http.StatusNoContent)
}
