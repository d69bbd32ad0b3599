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
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/voucher"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc   service.Service
	cache ecache.Cache
}

func NewHandler(svc service.Service, cache ecache.Cache) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/checkout", ginx.BS[CheckoutReq](h.Checkout))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[OrderDetailReq](h.OrderDetail))
	g.POST("/cancel", ginx.BS[CancelOrderReq](h.CancelOrder))
}

func (h *Handler) Checkout(ctx *ginx.Context, req CheckoutReq, sess session.Session) (ginx.Result, error) {
	if err := h.checkRequestID(ctx.Request.Context(), req.RequestID); err != nil {
		return checkoutInvalidResult, fmt.Errorf("请求ID错误: %w", err)
	}

	res, err := h.svc.Checkout(ctx.Request.Context(), domain.Checkout{
		UID: sess.Claims().Uid,
		Items: slice.Map(req.Items, func(idx int, src CheckoutItem) domain.CheckoutItem {
			return domain.CheckoutItem{
				ProductID: src.ProductID,
				Quantity:  src.Quantity,
				Size:      src.Size,
			}
		}),
		AddressID:       req.AddressID,
		PaymentMethodID: req.PaymentMethodID,
		VoucherCode:     req.VoucherCode,
	})
	if err != nil {
		return h.checkoutErrorResult(err), fmt.Errorf("结账失败: %w", err)
	}

	o := res.Order
	resp := CheckoutResp{
		OrderID:         o.ID,
		OrderSN:         o.SN,
		AddressID:       req.AddressID,
		PaymentMethodID: o.PaymentMethodID,
		VoucherID:       o.VoucherID,
		SubTotal:        o.SubTotal,
		Discount:        o.Discount,
		ShippingFee:     o.ShippingFee,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
	}
	if res.Momo != nil {
		resp.Momo = &Momo{PayURL: res.Momo.PayURL}
	}
	return ginx.Result{Data: resp}, nil
}

// checkoutErrorResult 结账在哪一步失败, 就向调用方报哪一步的原因
func (h *Handler) checkoutErrorResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrEmptyCheckout),
		errors.Is(err, service.ErrInvalidQuantity):
		return checkoutInvalidResult
	case errors.Is(err, service.ErrAddressInvalid):
		return addressInvalidResult
	case errors.Is(err, service.ErrPaymentMethodInvalid):
		return paymentMethodInvalidResult
	case errors.Is(err, service.ErrProductNotSellable):
		return productNotSellableResult
	case errors.Is(err, service.ErrStockExhausted):
		return stockExhaustedResult
	case errors.Is(err, voucher.ErrVoucherNotFound),
		errors.Is(err, voucher.ErrVoucherExpired),
		errors.Is(err, voucher.ErrVoucherUnavailable),
		errors.Is(err, voucher.ErrBelowMinimumAmount):
		return voucherInvalidResult
	default:
		return systemErrorResult
	}
}

func (h *Handler) checkRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("请求ID为空")
	}
	key := fmt.Sprintf("order:checkout:%s", requestID)
	val := h.cache.Get(ctx, key)
	if !val.KeyNotFound() {
		return fmt.Errorf("重复请求")
	}
	if err := h.cache.Set(ctx, key, requestID, 0); err != nil {
		return fmt.Errorf("缓存请求ID失败: %w", err)
	}
	return nil
}

func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	os, total, err := h.svc.List(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(os, func(idx int, src domain.Order) Order {
				return h.toOrderVO(src)
			}),
		},
	}, nil
}

func (h *Handler) OrderDetail(ctx *ginx.Context, req OrderDetailReq, sess session.Session) (ginx.Result, error) {
	o, err := h.svc.Detail(ctx.Request.Context(), sess.Claims().Uid, req.OrderID)
	if err != nil {
		return orderNotFoundResult, fmt.Errorf("查询订单详情失败: %w", err)
	}
	return ginx.Result{Data: h.toOrderVO(o)}, nil
}

func (h *Handler) CancelOrder(ctx *ginx.Context, req CancelOrderReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Cancel(ctx.Request.Context(), sess.Claims().Uid, req.OrderID)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, fmt.Errorf("取消订单失败: %w", err)
	case errors.Is(err, service.ErrNotCancelable):
		return orderNotCancelableResult, fmt.Errorf("取消订单失败: %w", err)
	case err != nil:
		return systemErrorResult, fmt.Errorf("取消订单失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) toOrderVO(o domain.Order) Order {
	return Order{
		ID:              o.ID,
		SN:              o.SN,
		AddressSnapshot: o.AddressSnapshot,
		SubTotal:        o.SubTotal,
		Discount:        o.Discount,
		ShippingFee:     o.ShippingFee,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
		Ctime:           o.Ctime,
		Items: slice.Map(o.Items, func(idx int, src domain.Item) OrderItem {
			return OrderItem{
				ProductID:   src.ProductID,
				ProductName: src.ProductName,
				Size:        src.Size,
				Quantity:    src.Quantity,
				UnitPrice:   src.UnitPrice,
			}
		}),
	}
}
